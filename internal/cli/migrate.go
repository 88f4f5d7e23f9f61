package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	appdb "github.com/Flarenzy/ipam-monitor/internal/db"
	"github.com/spf13/cobra"
)

var errMissingDSN = errors.New("no database: pass --dsn or set DB_CONN")

func newMigrateCmd(opts *options) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the embedded schema migrations",
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres connection string (defaults to DB_CONN)")

	resolve := func() (string, error) {
		if dsn != "" {
			return dsn, nil
		}
		if env := os.Getenv("DB_CONN"); env != "" {
			return env, nil
		}
		return "", errMissingDSN
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolve()
			if err != nil {
				return err
			}
			applied, err := appdb.Migrate(cmd.Context(), target)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				_, err = fmt.Fprintln(opts.out, "schema is up to date")
				return err
			}
			for _, v := range applied {
				fmt.Fprintf(opts.out, "applied %05d\n", v)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolve()
			if err != nil {
				return err
			}
			states, err := appdb.MigrationStatus(cmd.Context(), target)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(opts.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tSTATE\tSOURCE")
			for _, s := range states {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(w, "%05d\t%s\t%s\n", s.Version, state, s.Source)
			}
			return w.Flush()
		},
	})

	return cmd
}
