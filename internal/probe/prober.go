// Package probe determines whether an IPv4 host is reachable, first with
// ICMP echo and then, when ICMP gives no clear answer, with a TCP connect
// fan-out over well-known ports.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"time"
)

const (
	DefaultICMPTimeout = 2 * time.Second
	DefaultTCPTimeout  = 2 * time.Second
)

type Config struct {
	ICMPTimeout time.Duration
	TCPTimeout  time.Duration
	Ports       []int
	Privileged  bool
}

type Prober struct {
	logger      *slog.Logger
	pinger      Pinger
	dialer      Dialer
	neighbors   NeighborTable
	ports       []int
	icmpTimeout time.Duration
	tcpTimeout  time.Duration
	now         func() time.Time
}

type Option func(*Prober)

func WithPinger(p Pinger) Option {
	return func(pr *Prober) { pr.pinger = p }
}

func WithDialer(d Dialer) Option {
	return func(pr *Prober) { pr.dialer = d }
}

func WithNeighborTable(n NeighborTable) Option {
	return func(pr *Prober) { pr.neighbors = n }
}

func WithClock(now func() time.Time) Option {
	return func(pr *Prober) { pr.now = now }
}

func NewProber(logger *slog.Logger, cfg Config, opts ...Option) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Prober{
		logger:      logger,
		pinger:      NewICMPPinger(cfg.Privileged),
		dialer:      &net.Dialer{},
		neighbors:   NewSystemNeighborTable(),
		ports:       cfg.Ports,
		icmpTimeout: cfg.ICMPTimeout,
		tcpTimeout:  cfg.TCPTimeout,
		now:         time.Now,
	}
	if len(p.ports) == 0 {
		p.ports = DefaultPorts
	}
	if p.icmpTimeout <= 0 {
		p.icmpTimeout = DefaultICMPTimeout
	}
	if p.tcpTimeout <= 0 {
		p.tcpTimeout = DefaultTCPTimeout
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe always returns a result. Failures are reported through Status.
func (p *Prober) Probe(ctx context.Context, addr string) (res Result) {
	res = Result{Address: addr, At: p.now()}

	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "probe panicked", "ip", addr, "panic", fmt.Sprint(r))
			res.Status = StatusError
			res.Error = fmt.Sprintf("probe panicked: %v", r)
			if res.Method == "" {
				res.Method = MethodICMP
			}
		}
	}()

	ip, err := netip.ParseAddr(addr)
	if err != nil || !ip.Is4() {
		res.Status = StatusError
		res.Method = MethodICMP
		res.Error = fmt.Sprintf("invalid ipv4 address %q", addr)
		return res
	}

	rtt, err := p.pinger.Ping(ctx, addr, p.icmpTimeout)
	switch {
	case err == nil:
		res.Status = StatusOnline
		res.Method = MethodICMP
		res.Latency = &rtt
		res.MAC = p.lookupMAC(ctx, addr)
		return res
	case errors.Is(err, ErrUnreachable):
		res.Status = StatusOffline
		res.Method = MethodICMP
		return res
	case ctx.Err() != nil:
		return p.timedOut(res, MethodICMP)
	case !errors.Is(err, ErrNoReply):
		p.logger.DebugContext(ctx, "icmp unusable, falling back to tcp", "ip", addr, "err", err.Error())
	}

	hit, ok := tcpFanOut(ctx, p.dialer, addr, p.ports, p.tcpTimeout)
	res.Method = MethodTCP
	if ok {
		res.Status = StatusBlocked
		res.Latency = &hit.latency
		res.Port = hit.port
		res.MAC = p.lookupMAC(ctx, addr)
		return res
	}
	if ctx.Err() != nil {
		return p.timedOut(res, MethodTCP)
	}

	res.Status = StatusOffline
	return res
}

func (p *Prober) timedOut(res Result, method Method) Result {
	res.Status = StatusTimeout
	res.Method = method
	res.Error = "probe deadline exceeded"
	return res
}

func (p *Prober) lookupMAC(ctx context.Context, addr string) string {
	if p.neighbors == nil {
		return ""
	}
	mac, ok := p.neighbors.Lookup(ctx, addr)
	if !ok {
		return ""
	}
	return mac
}
