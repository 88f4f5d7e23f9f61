// Package cli implements ipamctl, the operator command line.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

type options struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(o.errOut, &slog.HandlerOptions{Level: level}))
}

// NewRootCmd builds the ipamctl command tree writing to out and errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "ipamctl",
		Short:         "Operator tooling for the IPAM monitor",
		Long:          `Offline helpers for the IPAM monitor: CIDR arithmetic, ad-hoc liveness probes and schema migrations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newCIDRCmd(opts),
		newProbeCmd(opts),
		newMigrateCmd(opts),
	)
	return root
}
