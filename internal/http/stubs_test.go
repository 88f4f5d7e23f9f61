package http

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/auth"
	"github.com/Flarenzy/ipam-monitor/internal/domain"
)

type stubHealthChecker struct {
	err error
}

func (s stubHealthChecker) Ping(context.Context) error {
	return s.err
}

type stubNetworkService struct {
	listSubnetsFn  func(context.Context) ([]domain.Subnet, error)
	createSubnetFn func(context.Context, domain.CreateSubnetInput) (domain.Subnet, error)
	getSubnetFn    func(context.Context, int64) (domain.Subnet, error)
	updateSubnetFn func(context.Context, int64, domain.UpdateSubnetInput) (domain.Subnet, error)
	deleteSubnetFn func(context.Context, int64) error
	listIPsFn      func(context.Context, int64, domain.IPFilter) ([]domain.IPAddress, error)
	getIPFn        func(context.Context, domain.IPAddressID) (domain.IPAddress, error)
	updateIPFn     func(context.Context, domain.IPAddressID, domain.UpdateIPInput) (domain.IPAddress, error)
	assignIPFn     func(context.Context, domain.IPAddressID, domain.AssignIPInput) (domain.IPAddress, error)
	releaseIPFn    func(context.Context, domain.IPAddressID) (domain.IPAddress, error)
	reserveIPFn    func(context.Context, domain.IPAddressID, domain.ReserveIPInput) (domain.IPAddress, error)
}

func (s stubNetworkService) ListSubnets(ctx context.Context) ([]domain.Subnet, error) {
	if s.listSubnetsFn == nil {
		return nil, nil
	}
	return s.listSubnetsFn(ctx)
}

func (s stubNetworkService) CreateSubnet(ctx context.Context, input domain.CreateSubnetInput) (domain.Subnet, error) {
	if s.createSubnetFn == nil {
		return domain.Subnet{}, nil
	}
	return s.createSubnetFn(ctx, input)
}

func (s stubNetworkService) GetSubnet(ctx context.Context, id int64) (domain.Subnet, error) {
	if s.getSubnetFn == nil {
		return domain.Subnet{}, nil
	}
	return s.getSubnetFn(ctx, id)
}

func (s stubNetworkService) UpdateSubnet(ctx context.Context, id int64, input domain.UpdateSubnetInput) (domain.Subnet, error) {
	if s.updateSubnetFn == nil {
		return domain.Subnet{}, nil
	}
	return s.updateSubnetFn(ctx, id, input)
}

func (s stubNetworkService) DeleteSubnet(ctx context.Context, id int64) error {
	if s.deleteSubnetFn == nil {
		return nil
	}
	return s.deleteSubnetFn(ctx, id)
}

func (s stubNetworkService) ListIPs(ctx context.Context, subnetID int64, filter domain.IPFilter) ([]domain.IPAddress, error) {
	if s.listIPsFn == nil {
		return nil, nil
	}
	return s.listIPsFn(ctx, subnetID, filter)
}

func (s stubNetworkService) GetIP(ctx context.Context, id domain.IPAddressID) (domain.IPAddress, error) {
	if s.getIPFn == nil {
		return domain.IPAddress{}, nil
	}
	return s.getIPFn(ctx, id)
}

func (s stubNetworkService) UpdateIP(ctx context.Context, id domain.IPAddressID, input domain.UpdateIPInput) (domain.IPAddress, error) {
	if s.updateIPFn == nil {
		return domain.IPAddress{}, nil
	}
	return s.updateIPFn(ctx, id, input)
}

func (s stubNetworkService) AssignIP(ctx context.Context, id domain.IPAddressID, input domain.AssignIPInput) (domain.IPAddress, error) {
	if s.assignIPFn == nil {
		return domain.IPAddress{}, nil
	}
	return s.assignIPFn(ctx, id, input)
}

func (s stubNetworkService) ReleaseIP(ctx context.Context, id domain.IPAddressID) (domain.IPAddress, error) {
	if s.releaseIPFn == nil {
		return domain.IPAddress{}, nil
	}
	return s.releaseIPFn(ctx, id)
}

func (s stubNetworkService) ReserveIP(ctx context.Context, id domain.IPAddressID, input domain.ReserveIPInput) (domain.IPAddress, error) {
	if s.reserveIPFn == nil {
		return domain.IPAddress{}, nil
	}
	return s.reserveIPFn(ctx, id, input)
}

func (s stubNetworkService) ReclaimExpiredReservations(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type stubPingService struct {
	pingIPFn     func(context.Context, domain.IPAddressID) (domain.PingEntry, error)
	pingSubnetFn func(context.Context, int64, int) (domain.SegmentPingReport, error)
	historyFn    func(context.Context, domain.IPAddressID, int) (domain.PingHistory, error)
	conflictsFn  func(context.Context, time.Duration) ([]domain.AddressConflicts, error)
	startScanFn  func(context.Context) error
	status       domain.ScanStatus
}

func (s stubPingService) PingIP(ctx context.Context, id domain.IPAddressID) (domain.PingEntry, error) {
	if s.pingIPFn == nil {
		return domain.PingEntry{}, nil
	}
	return s.pingIPFn(ctx, id)
}

func (s stubPingService) PingSubnet(ctx context.Context, subnetID int64, concurrency int) (domain.SegmentPingReport, error) {
	if s.pingSubnetFn == nil {
		return domain.SegmentPingReport{}, nil
	}
	return s.pingSubnetFn(ctx, subnetID, concurrency)
}

func (s stubPingService) History(ctx context.Context, id domain.IPAddressID, limit int) (domain.PingHistory, error) {
	if s.historyFn == nil {
		return domain.PingHistory{}, nil
	}
	return s.historyFn(ctx, id, limit)
}

func (s stubPingService) Conflicts(ctx context.Context, window time.Duration) ([]domain.AddressConflicts, error) {
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

func (s stubPingService) ScanStatus() domain.ScanStatus {
	return s.status
}

func (s stubPingService) PruneHistory(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type stubAuthenticator struct {
	principal auth.Principal
	err       error
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (auth.Principal, error) {
	if s.err != nil {
		return auth.Principal{}, s.err
	}
	if token != "good-token" {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return s.principal, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
