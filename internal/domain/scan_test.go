package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/probe"
)

func TestScanCoordinatorRejectsSecondStart(t *testing.T) {
	c := NewScanCoordinator()
	release := make(chan struct{})

	err := c.Start(context.Background(), func(context.Context) (probe.Summary, error) {
		<-release
		return probe.Summary{Total: 4}, nil
	})
	if err != nil {
		t.Fatalf("expected first start to succeed, got %v", err)
	}

	err = c.Start(context.Background(), func(context.Context) (probe.Summary, error) {
		t.Fatal("second scan should not run")
		return probe.Summary{}, nil
	})
	if !errors.Is(err, ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}

	close(release)
	c.Wait()

	status := c.Status()
	if status.State != ScanIdle || status.StartedAt == nil || status.FinishedAt == nil {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.Summary == nil || status.Summary.Total != 4 {
		t.Fatalf("unexpected summary %+v", status.Summary)
	}
}

func TestScanCoordinatorRecordsFailure(t *testing.T) {
	c := NewScanCoordinator()
	c.now = func() time.Time { return checkedAt }

	if err := c.Start(context.Background(), func(context.Context) (probe.Summary, error) {
		return probe.Summary{}, errors.New("list subnets: db down")
	}); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	c.Wait()

	status := c.Status()
	if status.State != ScanError || status.LastError != "list subnets: db down" {
		t.Fatalf("unexpected status %+v", status)
	}

	if err := c.Start(context.Background(), func(context.Context) (probe.Summary, error) {
		return probe.Summary{}, nil
	}); err != nil {
		t.Fatalf("expected restart after failure, got %v", err)
	}
	c.Wait()
	if got := c.Status(); got.State != ScanIdle || got.LastError != "" {
		t.Fatalf("expected idle after successful rerun, got %+v", got)
	}
}

func TestScanCoordinatorInitialStatus(t *testing.T) {
	status := NewScanCoordinator().Status()
	if status.State != ScanIdle || status.StartedAt != nil || status.Summary != nil {
		t.Fatalf("unexpected initial status %+v", status)
	}
}
