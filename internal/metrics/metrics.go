// Package metrics exposes probe, conflict, scan and HTTP metrics for
// Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/Flarenzy/ipam-monitor/internal/probe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements domain.ProbeObserver.
type Collector struct {
	gatherer prometheus.Gatherer

	Probes        *prometheus.CounterVec
	ProbeLatency  *prometheus.HistogramVec
	Conflicts     prometheus.Counter
	Scans         *prometheus.CounterVec
	ScanDuration  prometheus.Histogram
	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// NewCollector registers metrics against reg, defaulting to the global
// registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	probes, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipam_probes_total",
		Help: "Liveness probes by terminal status and method.",
	}, []string{"status", "method"}))
	if err != nil {
		return nil, err
	}

	latency, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ipam_probe_latency_seconds",
		Help:    "Round-trip or connect latency of successful probes.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"method"}))
	if err != nil {
		return nil, err
	}

	conflicts, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ipam_mac_conflicts_total",
		Help: "Observations whose MAC differed from the previous one for the same address.",
	}))
	if err != nil {
		return nil, err
	}

	scans, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipam_scans_total",
		Help: "Completed full-network scans by final state.",
	}, []string{"state"}))
	if err != nil {
		return nil, err
	}

	scanDuration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ipam_scan_duration_seconds",
		Help:    "Wall time of full-network scans.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}))
	if err != nil {
		return nil, err
	}

	httpRequests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipam_http_requests_total",
		Help: "HTTP requests by method and status code.",
	}, []string{"method", "code"}))
	if err != nil {
		return nil, err
	}

	httpDurations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ipam_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		Probes:        probes,
		ProbeLatency:  latency,
		Conflicts:     conflicts,
		Scans:         scans,
		ScanDuration:  scanDuration,
		HTTPRequests:  httpRequests,
		HTTPDurations: httpDurations,
	}, nil
}

func (c *Collector) ObserveProbe(r probe.Result) {
	if c == nil {
		return
	}
	c.Probes.WithLabelValues(string(r.Status), string(r.Method)).Inc()
	if r.Latency != nil {
		c.ProbeLatency.WithLabelValues(string(r.Method)).Observe(r.Latency.Seconds())
	}
}

func (c *Collector) ObserveConflict() {
	if c == nil {
		return
	}
	c.Conflicts.Inc()
}

func (c *Collector) ObserveScan(state domain.ScanState, duration time.Duration) {
	if c == nil {
		return
	}
	c.Scans.WithLabelValues(string(state)).Inc()
	c.ScanDuration.Observe(duration.Seconds())
}

// Middleware counts and times every request passing through next.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return promhttp.InstrumentHandlerDuration(c.HTTPDurations,
		promhttp.InstrumentHandlerCounter(c.HTTPRequests, next))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// register returns the already registered collector of the same type when
// reg has one, so NewCollector can be called more than once per process.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		var zero T
		return zero, err
	}
	return c, nil
}

var _ domain.ProbeObserver = (*Collector)(nil)
