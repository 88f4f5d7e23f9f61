package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

var (
	// ErrUnreachable means the network stack positively reported the host or
	// network as unreachable. It is distinct from a silent timeout.
	ErrUnreachable = errors.New("host unreachable")
	ErrNoReply     = errors.New("no echo reply")
)

// Pinger sends a single ICMP echo and returns the round-trip time.
type Pinger interface {
	Ping(ctx context.Context, addr string, timeout time.Duration) (time.Duration, error)
}

type ICMPPinger struct {
	// Privileged selects raw sockets instead of unprivileged datagram ICMP sockets.
	Privileged bool
}

func NewICMPPinger(privileged bool) *ICMPPinger {
	return &ICMPPinger{Privileged: privileged}
}

func (p *ICMPPinger) Ping(ctx context.Context, addr string, timeout time.Duration) (time.Duration, error) {
	pinger, err := probing.NewPinger(addr)
	if err != nil {
		return 0, fmt.Errorf("new pinger: %w", err)
	}
	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(p.Privileged)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-done:
		}
	}()

	if err := pinger.Run(); err != nil {
		return 0, classifyICMPError(err)
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, ErrNoReply
	}
	return stats.AvgRtt, nil
}

func classifyICMPError(err error) error {
	if errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if strings.Contains(strings.ToLower(err.Error()), "unreachable") {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return err
}
