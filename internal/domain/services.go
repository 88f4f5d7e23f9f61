package domain

import (
	"context"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/probe"
)

type NetworkService interface {
	ListSubnets(ctx context.Context) ([]Subnet, error)
	CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error)
	GetSubnet(ctx context.Context, id int64) (Subnet, error)
	UpdateSubnet(ctx context.Context, id int64, input UpdateSubnetInput) (Subnet, error)
	DeleteSubnet(ctx context.Context, id int64) error
	ListIPs(ctx context.Context, subnetID int64, filter IPFilter) ([]IPAddress, error)
	GetIP(ctx context.Context, id IPAddressID) (IPAddress, error)
	UpdateIP(ctx context.Context, id IPAddressID, input UpdateIPInput) (IPAddress, error)
	AssignIP(ctx context.Context, id IPAddressID, input AssignIPInput) (IPAddress, error)
	ReleaseIP(ctx context.Context, id IPAddressID) (IPAddress, error)
	ReserveIP(ctx context.Context, id IPAddressID, input ReserveIPInput) (IPAddress, error)
	ReclaimExpiredReservations(ctx context.Context, now time.Time) (int64, error)
}

type PingService interface {
	PingIP(ctx context.Context, id IPAddressID) (PingEntry, error)
	PingSubnet(ctx context.Context, subnetID int64, concurrency int) (SegmentPingReport, error)
	History(ctx context.Context, id IPAddressID, limit int) (PingHistory, error)
	Conflicts(ctx context.Context, window time.Duration) ([]AddressConflicts, error)
	StartScan(ctx context.Context) error
	ScanStatus() ScanStatus
	PruneHistory(ctx context.Context, now time.Time) (int64, error)
}

// Prober is the liveness probing collaborator.
type Prober interface {
	Probe(ctx context.Context, addr string) probe.Result
	ProbeAll(ctx context.Context, addrs []string, concurrency int) map[string]probe.Result
}

// ProbeObserver receives every probe result and conflict, typically for metrics.
type ProbeObserver interface {
	ObserveProbe(r probe.Result)
	ObserveConflict()
	ObserveScan(state ScanState, duration time.Duration)
}
