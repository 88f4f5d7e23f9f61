package cli

import (
	"fmt"
	"os/signal"
	"slices"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/cidr"
	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/Flarenzy/ipam-monitor/internal/probe"
	"github.com/spf13/cobra"
)

// expandTargets accepts single addresses and CIDR blocks. Blocks expand to
// their usable hosts. The result is numerically ordered without duplicates.
func expandTargets(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if block, err := cidr.Parse(arg); err == nil {
			if block.UsableHosts > domain.MaxUsableHosts {
				return nil, fmt.Errorf("%w: %s has %d hosts, max %d", domain.ErrSegmentTooLarge, block, block.UsableHosts, domain.MaxUsableHosts)
			}
			out = append(out, block.Hosts()...)
			continue
		}
		if _, err := cidr.IPToLong(arg); err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	cidr.Sort(out)
	return slices.Compact(out), nil
}

func newProbeCmd(opts *options) *cobra.Command {
	var (
		concurrency int
		icmpTimeout time.Duration
		tcpTimeout  time.Duration
		privileged  bool
	)

	cmd := &cobra.Command{
		Use:     "probe <address|block>...",
		Aliases: []string{"ping"},
		Short:   "Probe addresses with ICMP then TCP without touching the database",
		Example: "  ipamctl probe 10.0.0.1 10.0.0.2\n  ipamctl probe 192.168.1.0/28 --concurrency 32",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := expandTargets(args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			prober := probe.NewBatch(probe.NewProber(opts.logger(), probe.Config{
				ICMPTimeout: icmpTimeout,
				TCPTimeout:  tcpTimeout,
				Privileged:  privileged,
			}))
			results := prober.ProbeAll(ctx, targets, concurrency)

			return printResults(opts, targets, results)
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", probe.DefaultConcurrency, "Parallel probes")
	cmd.Flags().DurationVar(&icmpTimeout, "icmp-timeout", probe.DefaultICMPTimeout, "ICMP echo timeout")
	cmd.Flags().DurationVar(&tcpTimeout, "tcp-timeout", probe.DefaultTCPTimeout, "TCP connect timeout")
	cmd.Flags().BoolVar(&privileged, "privileged", false, "Use raw ICMP sockets")
	return cmd
}

func printResults(opts *options, targets []string, results map[string]probe.Result) error {
	w := tabwriter.NewWriter(opts.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tSTATUS\tMETHOD\tLATENCY\tMAC")
	for _, addr := range targets {
		r, ok := results[addr]
		if !ok {
			continue
		}
		latency := "-"
		if r.Latency != nil {
			latency = r.Latency.Round(10 * time.Microsecond).String()
		}
		mac := r.MAC
		if mac == "" {
			mac = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", addr, r.Status, r.Method, latency, mac)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := probe.Summarize(results)
	_, err := fmt.Fprintf(opts.out, "\n%d probed: %d online, %d blocked, %d offline, %d timeout, %d error\n",
		s.Total, s.Online, s.Blocked, s.Offline, s.Timeout, s.Error)
	return err
}

