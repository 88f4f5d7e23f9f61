package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/Flarenzy/ipam-monitor/internal/cidr"
	"github.com/spf13/cobra"
)

func newCIDRCmd(opts *options) *cobra.Command {
	var listHosts bool

	cmd := &cobra.Command{
		Use:     "cidr <block>",
		Aliases: []string{"calc"},
		Short:   "Describe an IPv4 block",
		Example: "  ipamctl cidr 192.168.1.0/24\n  ipamctl cidr 10.0.0.0/29 --hosts",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := cidr.Parse(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(opts.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "CIDR\t%s\n", block)
			fmt.Fprintf(w, "NETWORK\t%s\n", cidr.LongToIP(block.Network))
			fmt.Fprintf(w, "BROADCAST\t%s\n", cidr.LongToIP(block.Broadcast))
			fmt.Fprintf(w, "NETMASK\t%s\n", cidr.LongToIP(cidr.Mask(block.Bits)))
			if block.UsableHosts > 0 {
				fmt.Fprintf(w, "FIRST USABLE\t%s\n", cidr.LongToIP(block.FirstUsable))
				fmt.Fprintf(w, "LAST USABLE\t%s\n", cidr.LongToIP(block.LastUsable))
			}
			fmt.Fprintf(w, "TOTAL HOSTS\t%d\n", block.TotalHosts)
			fmt.Fprintf(w, "USABLE HOSTS\t%d\n", block.UsableHosts)
			if err := w.Flush(); err != nil {
				return err
			}

			if listHosts {
				for _, h := range block.Hosts() {
					fmt.Fprintln(opts.out, h)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&listHosts, "hosts", false, "Also print every usable host address")
	return cmd
}
