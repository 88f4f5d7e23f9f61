package domain

import (
	"context"
	"errors"
	"log/slog"
	"net/netip"
	"testing"
	"time"
)

func TestConflictDetectorFlagsDifferentMAC(t *testing.T) {
	detector := NewConflictDetector(nil, stubPingHistoryRepository{
		latestFn: func(context.Context, netip.Addr, time.Time, time.Time) (PingEntry, bool, error) {
			return PingEntry{MAC: "aa:aa:aa:aa:aa:aa"}, true, nil
		},
	}, 0)

	entry := PingEntry{IP: netip.MustParseAddr("10.0.0.5"), MAC: "bb:bb:bb:bb:bb:bb", CheckedAt: checkedAt}
	detector.Annotate(context.Background(), &entry)

	if !entry.HasConflict || entry.PreviousMAC != "aa:aa:aa:aa:aa:aa" {
		t.Fatalf("expected conflict, got %+v", entry)
	}
}

func TestConflictDetectorIgnoresCaseAndSeparator(t *testing.T) {
	detector := NewConflictDetector(nil, stubPingHistoryRepository{
		latestFn: func(context.Context, netip.Addr, time.Time, time.Time) (PingEntry, bool, error) {
			return PingEntry{MAC: "AA-BB-CC-DD-EE-FF"}, true, nil
		},
	}, time.Minute)

	entry := PingEntry{MAC: "aa:bb:cc:dd:ee:ff", CheckedAt: checkedAt}
	detector.Annotate(context.Background(), &entry)

	if entry.HasConflict {
		t.Fatalf("expected no conflict, got %+v", entry)
	}
}

func TestConflictDetectorSkipsWithoutMAC(t *testing.T) {
	detector := NewConflictDetector(nil, stubPingHistoryRepository{
		latestFn: func(context.Context, netip.Addr, time.Time, time.Time) (PingEntry, bool, error) {
			t.Fatal("lookup should not run without a mac")
			return PingEntry{}, false, nil
		},
	}, 0)

	entry := PingEntry{CheckedAt: checkedAt}
	detector.Annotate(context.Background(), &entry)
	if entry.HasConflict {
		t.Fatal("expected no conflict")
	}
}

func TestConflictDetectorNoPriorObservation(t *testing.T) {
	detector := NewConflictDetector(nil, stubPingHistoryRepository{}, 0)

	entry := PingEntry{MAC: "aa:bb:cc:dd:ee:ff", CheckedAt: checkedAt}
	detector.Annotate(context.Background(), &entry)
	if entry.HasConflict || entry.PreviousMAC != "" {
		t.Fatalf("expected no conflict, got %+v", entry)
	}
}

func TestConflictDetectorDegradesOnLookupError(t *testing.T) {
	handler := &captureHandler{}
	detector := NewConflictDetector(slog.New(handler), stubPingHistoryRepository{
		latestFn: func(context.Context, netip.Addr, time.Time, time.Time) (PingEntry, bool, error) {
			return PingEntry{}, false, errors.New("db down")
		},
	}, 0)

	entry := PingEntry{IP: netip.MustParseAddr("10.0.0.5"), MAC: "aa:bb:cc:dd:ee:ff", CheckedAt: checkedAt}
	detector.Annotate(context.Background(), &entry)

	if entry.HasConflict {
		t.Fatal("expected lookup failure to leave entry conflict-free")
	}
	if len(handler.records) != 1 || handler.records[0].Message != "conflict lookup failed" {
		t.Fatalf("expected one warning, got %d records", len(handler.records))
	}
}
