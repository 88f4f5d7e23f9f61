package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type loggingNetworkService struct {
	logger *slog.Logger
	next   NetworkService
}

func NewLoggingNetworkService(logger *slog.Logger, next NetworkService) NetworkService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingNetworkService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingNetworkService) ListSubnets(ctx context.Context) ([]Subnet, error) {
	subnets, err := s.next.ListSubnets(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list subnets failed", "err", err.Error())
	}
	return subnets, err
}

func (s *loggingNetworkService) CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error) {
	subnet, err := s.next.CreateSubnet(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "create subnet failed", "cidr", input.CIDR, "err", err.Error())
		return Subnet{}, err
	}

	s.logger.InfoContext(ctx, "subnet created", "id", subnet.ID, "cidr", subnet.CIDR.String())
	return subnet, nil
}

func (s *loggingNetworkService) GetSubnet(ctx context.Context, id int64) (Subnet, error) {
	subnet, err := s.next.GetSubnet(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "get subnet failed", "id", id, "err", err.Error())
	}
	return subnet, err
}

func (s *loggingNetworkService) UpdateSubnet(ctx context.Context, id int64, input UpdateSubnetInput) (Subnet, error) {
	subnet, err := s.next.UpdateSubnet(ctx, id, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "update subnet failed", "id", id, "err", err.Error())
		return Subnet{}, err
	}

	s.logger.InfoContext(ctx, "subnet updated", "id", id)
	return subnet, nil
}

func (s *loggingNetworkService) DeleteSubnet(ctx context.Context, id int64) error {
	err := s.next.DeleteSubnet(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "delete subnet failed", "id", id, "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "subnet deleted", "id", id)
	return nil
}

func (s *loggingNetworkService) ListIPs(ctx context.Context, subnetID int64, filter IPFilter) ([]IPAddress, error) {
	ips, err := s.next.ListIPs(ctx, subnetID, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "list ips failed", "subnet_id", subnetID, "err", err.Error())
	}
	return ips, err
}

func (s *loggingNetworkService) GetIP(ctx context.Context, id IPAddressID) (IPAddress, error) {
	ip, err := s.next.GetIP(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "get ip failed", "ip_id", string(id), "err", err.Error())
	}
	return ip, err
}

func (s *loggingNetworkService) UpdateIP(ctx context.Context, id IPAddressID, input UpdateIPInput) (IPAddress, error) {
	ip, err := s.next.UpdateIP(ctx, id, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "update ip failed", "ip_id", string(id), "err", err.Error())
	}
	return ip, err
}

func (s *loggingNetworkService) AssignIP(ctx context.Context, id IPAddressID, input AssignIPInput) (IPAddress, error) {
	ip, err := s.next.AssignIP(ctx, id, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "assign ip failed", "ip_id", string(id), "device_id", string(input.DeviceID), "err", err.Error())
		return IPAddress{}, err
	}

	s.logger.InfoContext(ctx, "ip assigned", "ip", ip.IP.String(), "device_id", string(input.DeviceID))
	return ip, nil
}

func (s *loggingNetworkService) ReleaseIP(ctx context.Context, id IPAddressID) (IPAddress, error) {
	ip, err := s.next.ReleaseIP(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "release ip failed", "ip_id", string(id), "err", err.Error())
		return IPAddress{}, err
	}

	s.logger.InfoContext(ctx, "ip released", "ip", ip.IP.String())
	return ip, nil
}

func (s *loggingNetworkService) ReserveIP(ctx context.Context, id IPAddressID, input ReserveIPInput) (IPAddress, error) {
	ip, err := s.next.ReserveIP(ctx, id, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "reserve ip failed", "ip_id", string(id), "err", err.Error())
		return IPAddress{}, err
	}

	s.logger.InfoContext(ctx, "ip reserved", "ip", ip.IP.String(), "reserved_by", input.ReservedBy)
	return ip, nil
}

func (s *loggingNetworkService) ReclaimExpiredReservations(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.next.ReclaimExpiredReservations(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "reclaim reservations failed", "err", err.Error())
		return 0, err
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired reservations reclaimed", "count", n)
	}
	return n, nil
}

type loggingPingService struct {
	logger *slog.Logger
	next   PingService
}

func NewLoggingPingService(logger *slog.Logger, next PingService) PingService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingPingService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingPingService) PingIP(ctx context.Context, id IPAddressID) (PingEntry, error) {
	entry, err := s.next.PingIP(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "ping ip failed", "ip_id", string(id), "err", err.Error())
		return PingEntry{}, err
	}

	s.logger.DebugContext(ctx, "ip pinged", "ip", entry.IP.String(), "status", string(entry.Status), "method", string(entry.Method))
	if entry.HasConflict {
		s.logger.WarnContext(ctx, "mac conflict detected", "ip", entry.IP.String(), "mac", entry.MAC, "previous_mac", entry.PreviousMAC)
	}
	return entry, nil
}

func (s *loggingPingService) PingSubnet(ctx context.Context, subnetID int64, concurrency int) (SegmentPingReport, error) {
	report, err := s.next.PingSubnet(ctx, subnetID, concurrency)
	if err != nil {
		s.logger.ErrorContext(ctx, "ping subnet failed", "subnet_id", subnetID, "err", err.Error())
		return SegmentPingReport{}, err
	}

	s.logger.InfoContext(ctx, "subnet pinged",
		"subnet_id", subnetID,
		"total", report.Summary.Total,
		"online", report.Summary.Online,
		"blocked", report.Summary.Blocked,
		"offline", report.Summary.Offline,
	)
	return report, nil
}

func (s *loggingPingService) History(ctx context.Context, id IPAddressID, limit int) (PingHistory, error) {
	history, err := s.next.History(ctx, id, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "ping history failed", "ip_id", string(id), "err", err.Error())
	}
	return history, err
}

func (s *loggingPingService) Conflicts(ctx context.Context, window time.Duration) ([]AddressConflicts, error) {
	conflicts, err := s.next.Conflicts(ctx, window)
	if err != nil {
		s.logger.ErrorContext(ctx, "list conflicts failed", "err", err.Error())
	}
	return conflicts, err
}

func (s *loggingPingService) StartScan(ctx context.Context) error {
	err := s.next.StartScan(ctx)
	if errors.Is(err, ErrScanInProgress) {
		s.logger.WarnContext(ctx, "scan already running")
		return err
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "start scan failed", "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "scan started")
	return nil
}

func (s *loggingPingService) ScanStatus() ScanStatus {
	return s.next.ScanStatus()
}

func (s *loggingPingService) PruneHistory(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.next.PruneHistory(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "prune history failed", "err", err.Error())
		return 0, err
	}

	s.logger.InfoContext(ctx, "ping history pruned", "deleted", n)
	return n, nil
}
