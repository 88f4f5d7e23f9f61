package probe

import (
	"context"
	"net"
	"strconv"
	"time"
)

// DefaultPorts are the well-known services tried when ICMP gives no verdict.
var DefaultPorts = []int{22, 80, 443, 445, 3389, 135, 139, 21, 23, 3306, 5432, 1433, 8080}

type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

type tcpHit struct {
	port    int
	latency time.Duration
}

// tcpFanOut dials every port in parallel and returns the first one that
// accepts. All dials finish or are cancelled before it returns.
func tcpFanOut(ctx context.Context, d Dialer, addr string, ports []int, timeout time.Duration) (tcpHit, bool) {
	if len(ports) == 0 {
		return tcpHit{}, false
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan *tcpHit, len(ports))
	for _, port := range ports {
		go func(port int) {
			dialCtx, dialCancel := context.WithTimeout(ctx, timeout)
			defer dialCancel()

			start := time.Now()
			conn, err := d.DialContext(dialCtx, "tcp", net.JoinHostPort(addr, strconv.Itoa(port)))
			if err != nil {
				results <- nil
				return
			}
			latency := time.Since(start)
			_ = conn.Close()
			results <- &tcpHit{port: port, latency: latency}
		}(port)
	}

	var hit *tcpHit
	for range ports {
		if r := <-results; r != nil && hit == nil {
			hit = r
			cancel()
		}
	}
	if hit == nil {
		return tcpHit{}, false
	}
	return *hit, true
}
