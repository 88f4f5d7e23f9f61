package domain

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"
)

type captureHandler struct {
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, record slog.Record) error {
	clone := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clone.AddAttrs(attr)
		return true
	})
	h.records = append(h.records, clone)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *captureHandler) WithGroup(string) slog.Handler {
	return h
}

type stubNetworkService struct {
	listSubnetsFn  func(context.Context) ([]Subnet, error)
	createSubnetFn func(context.Context, CreateSubnetInput) (Subnet, error)
	getSubnetFn    func(context.Context, int64) (Subnet, error)
	updateSubnetFn func(context.Context, int64, UpdateSubnetInput) (Subnet, error)
	deleteSubnetFn func(context.Context, int64) error
	listIPsFn      func(context.Context, int64, IPFilter) ([]IPAddress, error)
	getIPFn        func(context.Context, IPAddressID) (IPAddress, error)
	updateIPFn     func(context.Context, IPAddressID, UpdateIPInput) (IPAddress, error)
	assignIPFn     func(context.Context, IPAddressID, AssignIPInput) (IPAddress, error)
	releaseIPFn    func(context.Context, IPAddressID) (IPAddress, error)
	reserveIPFn    func(context.Context, IPAddressID, ReserveIPInput) (IPAddress, error)
	reclaimFn      func(context.Context, time.Time) (int64, error)
}

func (s stubNetworkService) ListSubnets(ctx context.Context) ([]Subnet, error) {
	if s.listSubnetsFn == nil {
		return nil, nil
	}
	return s.listSubnetsFn(ctx)
}

func (s stubNetworkService) CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error) {
	if s.createSubnetFn == nil {
		return Subnet{}, nil
	}
	return s.createSubnetFn(ctx, input)
}

func (s stubNetworkService) GetSubnet(ctx context.Context, id int64) (Subnet, error) {
	if s.getSubnetFn == nil {
		return Subnet{}, nil
	}
	return s.getSubnetFn(ctx, id)
}

func (s stubNetworkService) UpdateSubnet(ctx context.Context, id int64, input UpdateSubnetInput) (Subnet, error) {
	if s.updateSubnetFn == nil {
		return Subnet{}, nil
	}
	return s.updateSubnetFn(ctx, id, input)
}

func (s stubNetworkService) DeleteSubnet(ctx context.Context, id int64) error {
	if s.deleteSubnetFn == nil {
		return nil
	}
	return s.deleteSubnetFn(ctx, id)
}

func (s stubNetworkService) ListIPs(ctx context.Context, subnetID int64, filter IPFilter) ([]IPAddress, error) {
	if s.listIPsFn == nil {
		return nil, nil
	}
	return s.listIPsFn(ctx, subnetID, filter)
}

func (s stubNetworkService) GetIP(ctx context.Context, id IPAddressID) (IPAddress, error) {
	if s.getIPFn == nil {
		return IPAddress{}, nil
	}
	return s.getIPFn(ctx, id)
}

func (s stubNetworkService) UpdateIP(ctx context.Context, id IPAddressID, input UpdateIPInput) (IPAddress, error) {
	if s.updateIPFn == nil {
		return IPAddress{}, nil
	}
	return s.updateIPFn(ctx, id, input)
}

func (s stubNetworkService) AssignIP(ctx context.Context, id IPAddressID, input AssignIPInput) (IPAddress, error) {
	if s.assignIPFn == nil {
		return IPAddress{}, nil
	}
	return s.assignIPFn(ctx, id, input)
}

func (s stubNetworkService) ReleaseIP(ctx context.Context, id IPAddressID) (IPAddress, error) {
	if s.releaseIPFn == nil {
		return IPAddress{}, nil
	}
	return s.releaseIPFn(ctx, id)
}

func (s stubNetworkService) ReserveIP(ctx context.Context, id IPAddressID, input ReserveIPInput) (IPAddress, error) {
	if s.reserveIPFn == nil {
		return IPAddress{}, nil
	}
	return s.reserveIPFn(ctx, id, input)
}

func (s stubNetworkService) ReclaimExpiredReservations(ctx context.Context, now time.Time) (int64, error) {
	if s.reclaimFn == nil {
		return 0, nil
	}
	return s.reclaimFn(ctx, now)
}

type stubPingService struct {
	pingIPFn     func(context.Context, IPAddressID) (PingEntry, error)
	pingSubnetFn func(context.Context, int64, int) (SegmentPingReport, error)
	historyFn    func(context.Context, IPAddressID, int) (PingHistory, error)
	conflictsFn  func(context.Context, time.Duration) ([]AddressConflicts, error)
	startScanFn  func(context.Context) error
	status       ScanStatus
	pruneFn      func(context.Context, time.Time) (int64, error)
}

func (s stubPingService) PingIP(ctx context.Context, id IPAddressID) (PingEntry, error) {
	if s.pingIPFn == nil {
		return PingEntry{}, nil
	}
	return s.pingIPFn(ctx, id)
}

func (s stubPingService) PingSubnet(ctx context.Context, subnetID int64, concurrency int) (SegmentPingReport, error) {
	if s.pingSubnetFn == nil {
		return SegmentPingReport{}, nil
	}
	return s.pingSubnetFn(ctx, subnetID, concurrency)
}

func (s stubPingService) History(ctx context.Context, id IPAddressID, limit int) (PingHistory, error) {
	if s.historyFn == nil {
		return PingHistory{}, nil
	}
	return s.historyFn(ctx, id, limit)
}

func (s stubPingService) Conflicts(ctx context.Context, window time.Duration) ([]AddressConflicts, error) {
	if s.conflictsFn == nil {
		return nil, nil
	}
	return s.conflictsFn(ctx, window)
}

func (s stubPingService) StartScan(ctx context.Context) error {
	if s.startScanFn == nil {
		return nil
	}
	return s.startScanFn(ctx)
}

func (s stubPingService) ScanStatus() ScanStatus {
	return s.status
}

func (s stubPingService) PruneHistory(ctx context.Context, now time.Time) (int64, error) {
	if s.pruneFn == nil {
		return 0, nil
	}
	return s.pruneFn(ctx, now)
}

func TestLoggingNetworkServiceLogsSubnetCreation(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	service := NewLoggingNetworkService(logger, stubNetworkService{
		createSubnetFn: func(_ context.Context, _ CreateSubnetInput) (Subnet, error) {
			return Subnet{ID: 7}, nil
		},
	})

	_, err := service.CreateSubnet(context.Background(), CreateSubnetInput{CIDR: "10.0.0.0/24"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(handler.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(handler.records))
	}
	if handler.records[0].Level != slog.LevelInfo || handler.records[0].Message != "subnet created" {
		t.Fatalf("unexpected log record: level=%v message=%q", handler.records[0].Level, handler.records[0].Message)
	}
}

func TestLoggingNetworkServiceLogsErrors(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	service := NewLoggingNetworkService(logger, stubNetworkService{
		assignIPFn: func(context.Context, IPAddressID, AssignIPInput) (IPAddress, error) {
			return IPAddress{}, ErrConflict
		},
	})

	_, err := service.AssignIP(context.Background(), "ip-1", AssignIPInput{DeviceID: "dev-1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if len(handler.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(handler.records))
	}
	if handler.records[0].Level != slog.LevelError || handler.records[0].Message != "assign ip failed" {
		t.Fatalf("unexpected log record: level=%v message=%q", handler.records[0].Level, handler.records[0].Message)
	}
}

func TestLoggingNetworkServiceQuietReclaim(t *testing.T) {
	handler := &captureHandler{}
	service := NewLoggingNetworkService(slog.New(handler), stubNetworkService{})

	if _, err := service.ReclaimExpiredReservations(context.Background(), time.Now()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(handler.records) != 0 {
		t.Fatalf("expected no log records for an empty sweep, got %d", len(handler.records))
	}
}

func TestNewLoggingNetworkServiceReturnsNextWhenLoggerNil(t *testing.T) {
	called := false
	next := stubNetworkService{
		createSubnetFn: func(_ context.Context, _ CreateSubnetInput) (Subnet, error) {
			called = true
			return Subnet{ID: 99}, nil
		},
	}
	wrapped := NewLoggingNetworkService(nil, next)
	subnet, err := wrapped.CreateSubnet(context.Background(), CreateSubnetInput{CIDR: "10.0.0.0/24"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !called {
		t.Fatal("expected wrapped service to delegate to next")
	}
	if subnet.ID != 99 {
		t.Fatalf("unexpected subnet id: %d", subnet.ID)
	}
}

func TestLoggingPingServiceWarnsOnConflict(t *testing.T) {
	handler := &captureHandler{}
	service := NewLoggingPingService(slog.New(handler), stubPingService{
		pingIPFn: func(context.Context, IPAddressID) (PingEntry, error) {
			return PingEntry{HasConflict: true, MAC: "bb:bb:bb:bb:bb:bb", PreviousMAC: "aa:aa:aa:aa:aa:aa"}, nil
		},
	})

	if _, err := service.PingIP(context.Background(), "ip-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var levels []slog.Level
	for _, r := range handler.records {
		levels = append(levels, r.Level)
	}
	if !slices.Contains(levels, slog.LevelWarn) {
		t.Fatalf("expected a warning record, got levels %v", levels)
	}
}

func TestLoggingPingServiceWarnsOnScanInProgress(t *testing.T) {
	handler := &captureHandler{}
	service := NewLoggingPingService(slog.New(handler), stubPingService{
		startScanFn: func(context.Context) error {
			return ErrScanInProgress
		},
	})

	if err := service.StartScan(context.Background()); !errors.Is(err, ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}
	if len(handler.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(handler.records))
	}
	if handler.records[0].Level != slog.LevelWarn || handler.records[0].Message != "scan already running" {
		t.Fatalf("unexpected log record: level=%v message=%q", handler.records[0].Level, handler.records[0].Message)
	}
}

func TestLoggingPingServiceLogsScanFailureAsError(t *testing.T) {
	handler := &captureHandler{}
	service := NewLoggingPingService(slog.New(handler), stubPingService{
		startScanFn: func(context.Context) error {
			return errors.New("boom")
		},
	})

	if err := service.StartScan(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(handler.records) != 1 || handler.records[0].Level != slog.LevelError || handler.records[0].Message != "start scan failed" {
		t.Fatalf("unexpected records %d", len(handler.records))
	}
}

func TestCaptureHandlerStoresIndependentRecords(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	logger.Info("first")
	logger.Info("second")

	if len(handler.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(handler.records))
	}
	if !slices.Equal([]string{handler.records[0].Message, handler.records[1].Message}, []string{"first", "second"}) {
		t.Fatalf("unexpected messages: %q, %q", handler.records[0].Message, handler.records[1].Message)
	}
}
