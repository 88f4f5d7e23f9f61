package domain

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

const DefaultConflictWindow = 10 * time.Minute

// ConflictDetector compares a fresh MAC observation against the newest prior
// observation for the same address inside a trailing window.
type ConflictDetector struct {
	logger  *slog.Logger
	history PingHistoryRepository
	window  time.Duration
}

func NewConflictDetector(logger *slog.Logger, history PingHistoryRepository, window time.Duration) *ConflictDetector {
	if logger == nil {
		logger = slog.Default()
	}
	if window <= 0 {
		window = DefaultConflictWindow
	}
	return &ConflictDetector{logger: logger, history: history, window: window}
}

// Annotate sets HasConflict and PreviousMAC on entry. It never touches stored
// history, and a failed lookup leaves the entry conflict-free.
func (d *ConflictDetector) Annotate(ctx context.Context, entry *PingEntry) {
	if entry.MAC == "" {
		return
	}

	prior, found, err := d.history.LatestWithMAC(ctx, entry.IP, entry.CheckedAt.Add(-d.window), entry.CheckedAt)
	if err != nil {
		d.logger.WarnContext(ctx, "conflict lookup failed", "ip", entry.IP.String(), "err", err.Error())
		return
	}
	if !found || sameMAC(prior.MAC, entry.MAC) {
		return
	}

	entry.HasConflict = true
	entry.PreviousMAC = prior.MAC
}

func sameMAC(a, b string) bool {
	return strings.EqualFold(strings.ReplaceAll(a, "-", ":"), strings.ReplaceAll(b, "-", ":"))
}
