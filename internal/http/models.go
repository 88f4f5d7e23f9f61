package http

import (
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/cidr"
	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/Flarenzy/ipam-monitor/internal/probe"
)

// SubnetResponse is the view of a network segment returned to clients.
type SubnetResponse struct {
	ID          int64     `json:"id" example:"1"`
	Name        string    `json:"name" example:"office"`
	CIDR        string    `json:"cidr" example:"10.0.0.0/24"`
	Gateway     string    `json:"gateway,omitempty" example:"10.0.0.1"`
	DNS         []string  `json:"dns" example:"1.1.1.1,8.8.8.8"`
	VLAN        *int      `json:"vlan,omitempty" example:"20"`
	Tags        []string  `json:"tags" example:"office,floor-2"`
	Description string    `json:"description" example:"Office network"`
	CreatedAt   time.Time `json:"created_at" example:"2024-05-10T15:04:05Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-05-10T15:04:05Z"`
}

// CreateSubnetRequest is the payload accepted when creating a subnet. The
// whole address pool is generated with it.
type CreateSubnetRequest struct {
	Name        string   `json:"name" example:"office"`
	CIDR        string   `json:"cidr" example:"10.0.0.0/24" validate:"required"`
	Gateway     string   `json:"gateway" example:"10.0.0.1"`
	DNS         []string `json:"dns" example:"1.1.1.1"`
	VLAN        *int     `json:"vlan" example:"20"`
	Tags        []string `json:"tags" example:"office"`
	Description string   `json:"description" example:"Office network"`
}

// UpdateSubnetRequest leaves omitted fields untouched. An empty gateway
// removes it.
type UpdateSubnetRequest struct {
	Name        *string   `json:"name" example:"office"`
	Gateway     *string   `json:"gateway" example:"10.0.0.254"`
	DNS         *[]string `json:"dns"`
	VLAN        *int      `json:"vlan" example:"30"`
	Tags        *[]string `json:"tags"`
	Description *string   `json:"description" example:"Office network"`
}

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"subnet not found"`
}

// IPResponse is one address of a subnet pool.
type IPResponse struct {
	ID            string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SubnetID      int64      `json:"subnet_id" example:"4"`
	IP            string     `json:"ip" example:"10.0.0.10"`
	Status        string     `json:"status" example:"in_use"`
	DeviceID      *string    `json:"device_id,omitempty" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Hostname      string     `json:"hostname" example:"printer-1"`
	MAC           string     `json:"mac" example:"aa:bb:cc:dd:ee:ff"`
	Notes         string     `json:"notes" example:"rack 4"`
	ReservedBy    string     `json:"reserved_by,omitempty" example:"netops"`
	ReservedUntil *time.Time `json:"reserved_until,omitempty"`
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at" example:"2024-05-10T15:04:05Z"`
	UpdatedAt     time.Time  `json:"updated_at" example:"2024-05-10T15:04:05Z"`
}

// UpdateIPRequest edits free-form details of an address.
type UpdateIPRequest struct {
	Hostname *string `json:"hostname" example:"pc-1"`
	Notes    *string `json:"notes" example:"desk 12"`
}

type AssignIPRequest struct {
	DeviceID string `json:"device_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Hostname string `json:"hostname" example:"web-1"`
	MAC      string `json:"mac" example:"aa:bb:cc:dd:ee:ff"`
}

type ReserveIPRequest struct {
	ReservedBy string     `json:"reserved_by" example:"netops"`
	Until      *time.Time `json:"until,omitempty" example:"2024-06-01T00:00:00Z"`
}

// PingResponse is a single liveness observation.
type PingResponse struct {
	ID          int64     `json:"id" example:"42"`
	IPID        string    `json:"ip_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	IP          string    `json:"ip" example:"10.0.0.10"`
	Status      string    `json:"status" example:"online"`
	Method      string    `json:"method" example:"icmp"`
	LatencyMs   *float64  `json:"response_time_ms,omitempty" example:"1.5"`
	MAC         string    `json:"mac,omitempty" example:"aa:bb:cc:dd:ee:ff"`
	PreviousMAC string    `json:"previous_mac,omitempty" example:"11:22:33:44:55:66"`
	HasConflict bool      `json:"has_conflict" example:"false"`
	Error       string    `json:"error,omitempty"`
	CheckedAt   time.Time `json:"checked_at" example:"2024-05-10T15:04:05Z"`
}

type SummaryResponse struct {
	Total        int      `json:"total" example:"254"`
	Online       int      `json:"online" example:"12"`
	Offline      int      `json:"offline" example:"240"`
	Timeout      int      `json:"timeout" example:"0"`
	Error        int      `json:"error" example:"0"`
	Blocked      int      `json:"blocked" example:"2"`
	AvgLatencyMs *float64 `json:"avg_response_time_ms,omitempty" example:"2.3"`
}

type SubnetPingResponse struct {
	SubnetID int64           `json:"subnet_id" example:"1"`
	Summary  SummaryResponse `json:"summary"`
	Results  []PingResponse  `json:"results"`
}

type StatsResponse struct {
	Total         int      `json:"total_checks" example:"100"`
	Up            int      `json:"up" example:"97"`
	UptimePercent float64  `json:"uptime_percent" example:"97"`
	AvgLatencyMs  *float64 `json:"avg_response_time_ms,omitempty" example:"1.8"`
}

type PingHistoryResponse struct {
	IP      IPResponse     `json:"ip"`
	Stats   StatsResponse  `json:"stats"`
	History []PingResponse `json:"history"`
}

// ConflictResponse groups conflicting observations of one address.
type ConflictResponse struct {
	IP      string         `json:"ip" example:"10.0.0.10"`
	Entries []PingResponse `json:"entries"`
}

type ScanStatusResponse struct {
	State      string           `json:"state" example:"running"`
	StartedAt  *time.Time       `json:"started_at,omitempty"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
	LastError  string           `json:"last_error,omitempty"`
	Summary    *SummaryResponse `json:"summary,omitempty"`
}

// CIDRResponse describes a parsed IPv4 block.
type CIDRResponse struct {
	CIDR         string `json:"cidr" example:"192.168.1.0/24"`
	Network      string `json:"network" example:"192.168.1.0"`
	Broadcast    string `json:"broadcast" example:"192.168.1.255"`
	Netmask      string `json:"netmask" example:"255.255.255.0"`
	FirstUsable  string `json:"first_usable,omitempty" example:"192.168.1.1"`
	LastUsable   string `json:"last_usable,omitempty" example:"192.168.1.254"`
	PrefixLength int    `json:"prefix_length" example:"24"`
	TotalHosts   uint64 `json:"total_hosts" example:"256"`
	UsableHosts  uint64 `json:"usable_hosts" example:"254"`
}

func subnetToResponse(s domain.Subnet) SubnetResponse {
	resp := SubnetResponse{
		ID:          s.ID,
		Name:        s.Name,
		CIDR:        s.CIDR.String(),
		DNS:         nonNilStrings(s.DNS),
		VLAN:        s.VLAN,
		Tags:        nonNilStrings(s.Tags),
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Gateway.IsValid() {
		resp.Gateway = s.Gateway.String()
	}
	return resp
}

func subnetsToResponse(subnets []domain.Subnet) []SubnetResponse {
	out := make([]SubnetResponse, 0, len(subnets))
	for _, s := range subnets {
		out = append(out, subnetToResponse(s))
	}
	return out
}

func ipToResponse(i domain.IPAddress) IPResponse {
	resp := IPResponse{
		ID:            string(i.ID),
		SubnetID:      i.SubnetID,
		IP:            i.IP.String(),
		Status:        string(i.Status),
		Hostname:      i.Hostname,
		MAC:           i.MAC,
		Notes:         i.Notes,
		ReservedBy:    i.ReservedBy,
		ReservedUntil: i.ReservedUntil,
		LastSeenAt:    i.LastSeenAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
	if i.DeviceID != nil {
		id := string(*i.DeviceID)
		resp.DeviceID = &id
	}
	return resp
}

func ipsToResponse(ips []domain.IPAddress) []IPResponse {
	out := make([]IPResponse, 0, len(ips))
	for _, ip := range ips {
		out = append(out, ipToResponse(ip))
	}
	return out
}

func pingToResponse(p domain.PingEntry) PingResponse {
	resp := PingResponse{
		ID:          p.ID,
		IPID:        string(p.IPID),
		IP:          p.IP.String(),
		Status:      string(p.Status),
		Method:      string(p.Method),
		MAC:         p.MAC,
		PreviousMAC: p.PreviousMAC,
		HasConflict: p.HasConflict,
		Error:       p.Error,
		CheckedAt:   p.CheckedAt,
	}
	if p.Latency != nil {
		ms := float64(*p.Latency) / float64(time.Millisecond)
		resp.LatencyMs = &ms
	}
	return resp
}

func pingsToResponse(entries []domain.PingEntry) []PingResponse {
	out := make([]PingResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, pingToResponse(e))
	}
	return out
}

func summaryToResponse(s probe.Summary) SummaryResponse {
	return SummaryResponse{
		Total:        s.Total,
		Online:       s.Online,
		Offline:      s.Offline,
		Timeout:      s.Timeout,
		Error:        s.Error,
		Blocked:      s.Blocked,
		AvgLatencyMs: s.AvgLatencyMs,
	}
}

func historyToResponse(h domain.PingHistory) PingHistoryResponse {
	return PingHistoryResponse{
		IP: ipToResponse(h.IP),
		Stats: StatsResponse{
			Total:         h.Stats.Total,
			Up:            h.Stats.Up,
			UptimePercent: h.Stats.UptimePercent,
			AvgLatencyMs:  h.Stats.AvgLatencyMs,
		},
		History: pingsToResponse(h.Entries),
	}
}

func conflictsToResponse(groups []domain.AddressConflicts) []ConflictResponse {
	out := make([]ConflictResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, ConflictResponse{IP: g.IP.String(), Entries: pingsToResponse(g.Entries)})
	}
	return out
}

func scanStatusToResponse(s domain.ScanStatus) ScanStatusResponse {
	resp := ScanStatusResponse{
		State:      string(s.State),
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		LastError:  s.LastError,
	}
	if s.Summary != nil {
		summary := summaryToResponse(*s.Summary)
		resp.Summary = &summary
	}
	return resp
}

func blockToResponse(b cidr.Block) CIDRResponse {
	resp := CIDRResponse{
		CIDR:         b.String(),
		Network:      cidr.LongToIP(b.Network),
		Broadcast:    cidr.LongToIP(b.Broadcast),
		Netmask:      cidr.LongToIP(cidr.Mask(b.Bits)),
		PrefixLength: b.Bits,
		TotalHosts:   b.TotalHosts,
		UsableHosts:  b.UsableHosts,
	}
	if b.UsableHosts > 0 {
		resp.FirstUsable = cidr.LongToIP(b.FirstUsable)
		resp.LastUsable = cidr.LongToIP(b.LastUsable)
	}
	return resp
}

func (r CreateSubnetRequest) toInput() domain.CreateSubnetInput {
	return domain.CreateSubnetInput{
		Name:        r.Name,
		CIDR:        r.CIDR,
		Gateway:     r.Gateway,
		DNS:         r.DNS,
		VLAN:        r.VLAN,
		Tags:        r.Tags,
		Description: r.Description,
	}
}

func (r UpdateSubnetRequest) toInput() domain.UpdateSubnetInput {
	return domain.UpdateSubnetInput{
		Name:        r.Name,
		Gateway:     r.Gateway,
		DNS:         r.DNS,
		VLAN:        r.VLAN,
		Tags:        r.Tags,
		Description: r.Description,
	}
}

func (r UpdateIPRequest) toInput() domain.UpdateIPInput {
	return domain.UpdateIPInput{Hostname: r.Hostname, Notes: r.Notes}
}

func (r AssignIPRequest) toInput() domain.AssignIPInput {
	return domain.AssignIPInput{
		DeviceID: domain.DeviceID(r.DeviceID),
		Hostname: r.Hostname,
		MAC:      r.MAC,
	}
}

func (r ReserveIPRequest) toInput() domain.ReserveIPInput {
	return domain.ReserveIPInput{ReservedBy: r.ReservedBy, Until: r.Until}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
