package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/auth"
	appdb "github.com/Flarenzy/ipam-monitor/internal/db"
	"github.com/Flarenzy/ipam-monitor/internal/domain"
	apihttp "github.com/Flarenzy/ipam-monitor/internal/http"
	"github.com/Flarenzy/ipam-monitor/internal/metrics"
	"github.com/Flarenzy/ipam-monitor/internal/notify"
	"github.com/Flarenzy/ipam-monitor/internal/probe"
	"github.com/Flarenzy/ipam-monitor/internal/scheduler"
	"github.com/prometheus/client_golang/prometheus"
)

func newAuthenticator(ctx context.Context, cfg Config) (auth.Authenticator, error) {
	return auth.NewKeycloakAuthenticator(ctx, auth.Config{
		Enabled:  cfg.AuthEnabled,
		Issuer:   cfg.AuthIssuer,
		Audience: cfg.AuthAudience,
		JWKSURL:  cfg.AuthJWKSURL,
	})
}

func newProber(logger *slog.Logger, cfg Config) domain.Prober {
	single := probe.NewProber(logger, probe.Config{
		ICMPTimeout: cfg.ProbeICMPTimeout,
		TCPTimeout:  cfg.ProbeTCPTimeout,
		Privileged:  cfg.ProbePrivileged,
	})
	return probe.NewBatch(single, probe.WithChunkHook(func(size int) {
		logger.Debug("probing chunk", "size", size)
	}))
}

func newNotifier(ctx context.Context, logger *slog.Logger, cfg Config) (*notify.Dispatcher, func(), error) {
	sinks := []notify.Sink{notify.NewLogSink(logger)}
	cleanup := func() {}

	if cfg.RedisAddr != "" {
		client, err := notify.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, notify.NewRedisSink(client, cfg.RedisChannel))
		cleanup = func() {
			if err := client.Close(); err != nil {
				logger.Error("closing redis client", "err", err.Error())
			}
		}
		logger.Info("redis notifications enabled", "addr", cfg.RedisAddr, "channel", cfg.RedisChannel)
	}

	return notify.NewDispatcher(logger, sinks), cleanup, nil
}

// Serve wires the application and serves HTTP on listener until ctx is done.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger, logCloser, err := newLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()

	if cfg.MigrateOnStart {
		applied, err := appdb.Migrate(ctx, cfg.DSN)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "versions", applied)
	}

	pool, err := appdb.NewPool(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	authenticator, err := newAuthenticator(ctx, cfg)
	if err != nil {
		return err
	}
	if authenticator != nil {
		logger.Info("auth enabled", "issuer", cfg.AuthIssuer, "audience", cfg.AuthAudience)
	}

	collector, err := metrics.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	dispatcher, closeRedis, err := newNotifier(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer closeRedis()
	dispatcher.Start(ctx)
	defer dispatcher.Close()

	subnets := appdb.NewSubnetRepository(pool)
	ips := appdb.NewIPRepository(pool)
	history := appdb.NewPingHistoryRepository(pool)
	devices := appdb.NewDeviceRepository(pool)

	scans := domain.NewScanCoordinator()
	networks := domain.NewLoggingNetworkService(logger, domain.NewNetworkService(subnets, ips, devices))
	pings := domain.NewLoggingPingService(logger, domain.NewPingService(
		logger, subnets, ips, history, devices, newProber(logger, cfg),
		domain.WithNotifier(dispatcher),
		domain.WithObserver(collector),
		domain.WithConflictWindow(cfg.ConflictWindow),
		domain.WithRetention(cfg.HistoryRetention),
		domain.WithScanConcurrency(cfg.ProbeConcurrency),
		domain.WithScanCoordinator(scans),
	))

	jobs := scheduler.New(logger)
	for _, job := range []scheduler.Job{
		scheduler.RetentionJob(pings, cfg.RetentionSchedule, time.Now),
		scheduler.ReservationJob(networks, cfg.ReservationSchedule, time.Now),
		scheduler.ScanJob(pings, cfg.ScanSchedule),
	} {
		if err := jobs.Add(job); err != nil {
			return err
		}
	}
	jobs.Start()

	api := apihttp.NewAPI(logger, pool, networks, pings, authenticator,
		apihttp.WithMetrics(collector),
		apihttp.WithWriteRole(cfg.AuthWriteRole),
	)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("serving http", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
	}

	logger.Info("shutting down server")

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown http: %w", err))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler did not stop in time", "err", err.Error())
	}
	waitForScan(shutdownCtx, logger, scans)

	return runErr
}

func waitForScan(ctx context.Context, logger *slog.Logger, scans *domain.ScanCoordinator) {
	done := make(chan struct{})
	go func() {
		scans.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("abandoning running scan on shutdown")
	}
}

// Run listens on cfg.Port and serves until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, cfg, listener)
}
