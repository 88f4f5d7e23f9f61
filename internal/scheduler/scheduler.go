// Package scheduler runs the periodic maintenance jobs: history retention,
// reservation reclaim and the optional full-network scan.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/robfig/cron/v3"
)

const DefaultJobTimeout = 10 * time.Minute

type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	logger  *slog.Logger
	cron    *cron.Cron
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger: logger,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		timeout: DefaultJobTimeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Add registers job. An empty schedule leaves the job disabled.
func (s *Scheduler) Add(job Job) error {
	if job.Schedule == "" {
		s.logger.Info("scheduled job disabled", "job", job.Name)
		return nil
	}

	_, err := s.cron.AddFunc(job.Schedule, func() {
		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		defer cancel()

		started := time.Now()
		if err := job.Run(ctx); err != nil {
			s.logger.ErrorContext(ctx, "scheduled job failed", "job", job.Name, "err", err.Error())
			return
		}
		s.logger.DebugContext(ctx, "scheduled job finished", "job", job.Name, "duration", time.Since(started).String())
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", job.Name, job.Schedule, err)
	}

	s.logger.Info("scheduled job registered", "job", job.Name, "schedule", job.Schedule)
	return nil
}

func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func RetentionJob(pings domain.PingService, schedule string, now func() time.Time) Job {
	return Job{
		Name:     "history-retention",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			_, err := pings.PruneHistory(ctx, now())
			return err
		},
	}
}

func ReservationJob(networks domain.NetworkService, schedule string, now func() time.Time) Job {
	return Job{
		Name:     "reservation-reclaim",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			_, err := networks.ReclaimExpiredReservations(ctx, now())
			return err
		},
	}
}

// ScanJob starts a full scan. A scan that is still running is not an error.
func ScanJob(pings domain.PingService, schedule string) Job {
	return Job{
		Name:     "network-scan",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			err := pings.StartScan(ctx)
			if errors.Is(err, domain.ErrScanInProgress) {
				return nil
			}
			return err
		},
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "err", err.Error())...)
}
