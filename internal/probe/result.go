package probe

import "time"

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusTimeout Status = "timeout"
	StatusError   Status = "error"
	StatusBlocked Status = "blocked"
)

type Method string

const (
	MethodICMP Method = "icmp"
	MethodTCP  Method = "tcp"
)

// Result is the terminal outcome of probing a single address.
type Result struct {
	Address string
	Status  Status
	Method  Method
	Latency *time.Duration
	MAC     string
	Port    int
	Error   string
	At      time.Time
}

// Up reports whether the host answered on any protocol.
func (r Result) Up() bool {
	return r.Status == StatusOnline || r.Status == StatusBlocked
}

type Summary struct {
	Total        int
	Online       int
	Offline      int
	Timeout      int
	Error        int
	Blocked      int
	AvgLatencyMs *float64
}

func Summarize(results map[string]Result) Summary {
	s := Summary{Total: len(results)}

	var sum time.Duration
	var n int
	for _, r := range results {
		switch r.Status {
		case StatusOnline:
			s.Online++
		case StatusOffline:
			s.Offline++
		case StatusTimeout:
			s.Timeout++
		case StatusError:
			s.Error++
		case StatusBlocked:
			s.Blocked++
		}
		if r.Latency != nil {
			sum += *r.Latency
			n++
		}
	}

	if n > 0 {
		avg := float64(sum) / float64(n) / float64(time.Millisecond)
		s.AvgLatencyMs = &avg
	}
	return s
}
