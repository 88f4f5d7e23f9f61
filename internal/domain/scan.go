package domain

import (
	"context"
	"sync"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/probe"
)

// ScanCoordinator admits at most one full-network scan at a time. A second
// Start while a scan runs is rejected, never queued.
type ScanCoordinator struct {
	mu     sync.Mutex
	status ScanStatus
	now    func() time.Time
	wg     sync.WaitGroup
}

func NewScanCoordinator() *ScanCoordinator {
	return &ScanCoordinator{status: ScanStatus{State: ScanIdle}, now: time.Now}
}

// Start runs fn in a background goroutine using ctx, which should not be a
// request-scoped context.
func (c *ScanCoordinator) Start(ctx context.Context, fn func(context.Context) (probe.Summary, error)) error {
	c.mu.Lock()
	if c.status.State == ScanRunning {
		c.mu.Unlock()
		return ErrScanInProgress
	}
	started := c.now()
	c.status = ScanStatus{State: ScanRunning, StartedAt: &started}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		summary, err := fn(ctx)
		c.finish(summary, err)
	}()
	return nil
}

func (c *ScanCoordinator) finish(summary probe.Summary, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	finished := c.now()
	c.status.FinishedAt = &finished
	c.status.Summary = &summary
	if err != nil {
		c.status.State = ScanError
		c.status.LastError = err.Error()
		return
	}
	c.status.State = ScanIdle
	c.status.LastError = ""
}

func (c *ScanCoordinator) Status() ScanStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Wait blocks until the running scan, if any, has finished.
func (c *ScanCoordinator) Wait() {
	c.wg.Wait()
}
