package domain

import (
	"context"
	"net/netip"
	"time"
)

type SubnetRepository interface {
	List(ctx context.Context) ([]Subnet, error)
	FindByID(ctx context.Context, id int64) (Subnet, error)
	// CreateWithAddresses persists the subnet and its whole address pool
	// atomically.
	CreateWithAddresses(ctx context.Context, input CreateSubnetRecord, addresses []NewIPAddress) (Subnet, error)
	Update(ctx context.Context, subnet Subnet) (Subnet, error)
	// ReassignGateway moves the gateway status from oldGW to newGW inside
	// one transaction. Either address may be invalid (absent).
	ReassignGateway(ctx context.Context, subnet Subnet, oldGW, newGW netip.Addr) (Subnet, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type IPRepository interface {
	ListBySubnetID(ctx context.Context, subnetID int64, filter IPFilter) ([]IPAddress, error)
	FindByID(ctx context.Context, id IPAddressID) (IPAddress, error)
	FindByAddress(ctx context.Context, subnetID int64, addr netip.Addr) (IPAddress, error)
	CountByStatus(ctx context.Context, subnetID int64, status IPStatus) (int64, error)
	UpdateDetails(ctx context.Context, id IPAddressID, input UpdateIPInput) (IPAddress, error)
	// CompareAndSwap writes next only while the stored status still equals
	// expected. It reports ErrConflict when the precondition no longer holds.
	CompareAndSwap(ctx context.Context, expected IPStatus, next IPAddress) (IPAddress, error)
	RecordObservation(ctx context.Context, id IPAddressID, mac string, seenAt time.Time) error
	ReleaseExpiredReservations(ctx context.Context, now time.Time) (int64, error)
}

type PingHistoryRepository interface {
	Create(ctx context.Context, entry PingEntry) (PingEntry, error)
	ListByIP(ctx context.Context, id IPAddressID, limit int) ([]PingEntry, error)
	// LatestWithMAC returns the newest entry for addr carrying a MAC and
	// checked in [since, before). found is false when none exists.
	LatestWithMAC(ctx context.Context, addr netip.Addr, since, before time.Time) (entry PingEntry, found bool, err error)
	ListConflicts(ctx context.Context, since time.Time) ([]PingEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type DeviceRepository interface {
	FindByID(ctx context.Context, id DeviceID) (Device, error)
	UpdateMAC(ctx context.Context, id DeviceID, mac string) error
}

// Notifier delivers notifications asynchronously. Implementations must not
// block the caller on delivery.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
