package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Flarenzy/ipam-monitor/internal/auth"
	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/Flarenzy/ipam-monitor/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger        *slog.Logger
	health        HealthChecker
	networks      domain.NetworkService
	pings         domain.PingService
	authenticator auth.Authenticator
	writeRole     string
	metrics       *metrics.Collector
}

type Option func(*API)

// WithMetrics instruments every request and serves /metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(a *API) { a.metrics = c }
}

// WithWriteRole requires the realm role on every mutating request.
func WithWriteRole(role string) Option {
	return func(a *API) { a.writeRole = role }
}

func NewAPI(
	logger *slog.Logger,
	health HealthChecker,
	networks domain.NetworkService,
	pings domain.PingService,
	authenticator auth.Authenticator,
	opts ...Option,
) *API {
	if logger == nil {
		logger = slog.Default()
	}
	a := &API{
		Logger:        logger,
		health:        health,
		networks:      networks,
		pings:         pings,
		authenticator: authenticator,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	if a.metrics != nil {
		mux.Handle("GET /metrics", a.metrics.Handler())
	}

	mux.HandleFunc("GET /api/v1/subnets", a.handleListSubnets)
	mux.HandleFunc("POST /api/v1/subnets", a.handleCreateSubnet)
	mux.HandleFunc("GET /api/v1/subnets/{id}", a.handleGetSubnetByID)
	mux.HandleFunc("PATCH /api/v1/subnets/{id}", a.handleUpdateSubnet)
	mux.HandleFunc("DELETE /api/v1/subnets/{id}", a.handleDeleteSubnetByID)
	mux.HandleFunc("GET /api/v1/subnets/{id}/ips", a.handleListIPsBySubnetID)

	mux.HandleFunc("GET /api/v1/ips/{uuid}", a.handleGetIP)
	mux.HandleFunc("PATCH /api/v1/ips/{uuid}", a.handleUpdateIP)
	mux.HandleFunc("POST /api/v1/ips/{uuid}/assign", a.handleAssignIP)
	mux.HandleFunc("POST /api/v1/ips/{uuid}/release", a.handleReleaseIP)
	mux.HandleFunc("POST /api/v1/ips/{uuid}/reserve", a.handleReserveIP)

	mux.HandleFunc("POST /api/v1/ping/ips/{uuid}", a.handlePingIP)
	mux.HandleFunc("GET /api/v1/ping/ips/{uuid}/history", a.handlePingHistory)
	mux.HandleFunc("POST /api/v1/ping/subnets/{id}", a.handlePingSubnet)
	mux.HandleFunc("GET /api/v1/ping/conflicts", a.handleConflicts)

	mux.HandleFunc("POST /api/v1/scans", a.handleStartScan)
	mux.HandleFunc("GET /api/v1/scans/status", a.handleScanStatus)

	mux.HandleFunc("GET /api/v1/cidr", a.handleCIDR)

	handler := a.authMiddleware(mux)
	if a.metrics != nil {
		handler = a.metrics.Middleware(handler)
	}
	return handler
}
