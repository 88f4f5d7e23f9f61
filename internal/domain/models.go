package domain

import (
	"net/netip"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/probe"
)

type IPAddressID string

type DeviceID string

type IPStatus string

const (
	IPStatusFree     IPStatus = "free"
	IPStatusReserved IPStatus = "reserved"
	IPStatusInUse    IPStatus = "in_use"
	IPStatusBlocked  IPStatus = "blocked"
	IPStatusGateway  IPStatus = "gateway"
)

func (s IPStatus) Valid() bool {
	switch s {
	case IPStatusFree, IPStatusReserved, IPStatusInUse, IPStatusBlocked, IPStatusGateway:
		return true
	}
	return false
}

// MaxUsableHosts caps the address pool generated for one segment (a /20).
const MaxUsableHosts = 4094

// Subnet is a network segment. CIDR is fixed once the segment exists.
type Subnet struct {
	ID          int64
	Name        string
	CIDR        netip.Prefix
	Gateway     netip.Addr
	DNS         []string
	VLAN        *int
	Tags        []string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type IPAddress struct {
	ID            IPAddressID
	SubnetID      int64
	IP            netip.Addr
	Status        IPStatus
	DeviceID      *DeviceID
	Hostname      string
	MAC           string
	Notes         string
	ReservedBy    string
	ReservedUntil *time.Time
	LastSeenAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewIPAddress is a pool record that has not been persisted yet.
type NewIPAddress struct {
	IP     netip.Addr
	Status IPStatus
}

type Device struct {
	ID   DeviceID
	Name string
	MAC  string
}

// PingEntry is one append-only liveness observation.
type PingEntry struct {
	ID          int64
	IPID        IPAddressID
	IP          netip.Addr
	Status      probe.Status
	Method      probe.Method
	Latency     *time.Duration
	MAC         string
	PreviousMAC string
	HasConflict bool
	Error       string
	CheckedAt   time.Time
}

type PingStats struct {
	Total         int
	Up            int
	UptimePercent float64
	AvgLatencyMs  *float64
}

type PingHistory struct {
	IP      IPAddress
	Entries []PingEntry
	Stats   PingStats
}

type AddressConflicts struct {
	IP      netip.Addr
	Entries []PingEntry
}

type SegmentPingReport struct {
	SubnetID int64
	Entries  []PingEntry
	Summary  probe.Summary
}

type ScanState string

const (
	ScanIdle    ScanState = "idle"
	ScanRunning ScanState = "running"
	ScanError   ScanState = "error"
)

type ScanStatus struct {
	State      ScanState
	StartedAt  *time.Time
	FinishedAt *time.Time
	LastError  string
	Summary    *probe.Summary
}

// Notification is a fire-and-forget signal for an external delivery channel.
type Notification struct {
	Kind    NotificationKind
	Subject string
	Message string
	Fields  map[string]string
	At      time.Time
}

type NotificationKind string

const (
	NotifyConflictDetected NotificationKind = "conflict_detected"
	NotifyScanComplete     NotificationKind = "scan_complete"
)
