package domain

import (
	"fmt"
	"net/netip"
	"slices"
	"strings"

	"github.com/Flarenzy/ipam-monitor/internal/cidr"
	"go4.org/netipx"
)

// onPrefixEdge reports whether addr is the network or broadcast address of p.
func onPrefixEdge(p netip.Prefix, addr netip.Addr) bool {
	r := netipx.RangeOfPrefix(p.Masked())
	return addr == r.From() || addr == r.To()
}

// GenerateAddresses builds the address pool for a subnet: one free record per
// usable host, with the gateway (if any) marked as such. A gateway sitting on
// the network or broadcast address gets one extra record.
func GenerateAddresses(subnet Subnet) ([]NewIPAddress, error) {
	block, err := cidr.Parse(subnet.CIDR.String())
	if err != nil {
		return nil, err
	}
	if block.UsableHosts > MaxUsableHosts {
		return nil, fmt.Errorf("%w: %s has %d usable hosts, limit is %d", ErrSegmentTooLarge, subnet.CIDR, block.UsableHosts, MaxUsableHosts)
	}

	var gw uint32
	hasGW := subnet.Gateway.IsValid()
	if hasGW {
		gw, err = cidr.AddrToLong(subnet.Gateway)
		if err != nil {
			return nil, err
		}
		if !block.Contains(gw) {
			return nil, fmt.Errorf("%w: gateway %s outside %s", ErrInvalidInput, subnet.Gateway, subnet.CIDR)
		}
	}

	out := make([]NewIPAddress, 0, block.UsableHosts+1)
	if hasGW && onPrefixEdge(subnet.CIDR, subnet.Gateway) {
		out = append(out, NewIPAddress{IP: subnet.Gateway, Status: IPStatusGateway})
	}
	if block.UsableHosts == 0 {
		return out, nil
	}
	for n := uint64(block.FirstUsable); n <= uint64(block.LastUsable); n++ {
		rec := NewIPAddress{IP: cidr.LongToAddr(uint32(n)), Status: IPStatusFree}
		if hasGW && uint32(n) == gw {
			rec.Status = IPStatusGateway
		}
		out = append(out, rec)
	}
	return out, nil
}

// Assign links rec to a device and marks it in use.
func Assign(rec IPAddress, input AssignIPInput) (IPAddress, error) {
	switch rec.Status {
	case IPStatusInUse:
		return rec, fmt.Errorf("%w: %s is already in use", ErrConflict, rec.IP)
	case IPStatusGateway, IPStatusBlocked:
		return rec, fmt.Errorf("%w: %s is %s", ErrInvalidState, rec.IP, rec.Status)
	}
	if input.DeviceID == "" {
		return rec, fmt.Errorf("%w: device id is required", ErrInvalidInput)
	}

	next := rec
	device := input.DeviceID
	next.Status = IPStatusInUse
	next.DeviceID = &device
	if input.Hostname != "" {
		next.Hostname = input.Hostname
	}
	if input.MAC != "" {
		next.MAC = input.MAC
	}
	next.ReservedBy = ""
	next.ReservedUntil = nil
	return next, nil
}

// Release returns an in-use or reserved record to the free pool.
func Release(rec IPAddress) (IPAddress, error) {
	if rec.Status != IPStatusInUse && rec.Status != IPStatusReserved {
		return rec, fmt.Errorf("%w: cannot release %s address %s", ErrInvalidState, rec.Status, rec.IP)
	}

	next := rec
	next.Status = IPStatusFree
	next.DeviceID = nil
	next.Hostname = ""
	next.MAC = ""
	next.Notes = ""
	next.ReservedBy = ""
	next.ReservedUntil = nil
	return next, nil
}

// Reserve holds a free record for a user. Expiry is reclaimed by a sweep.
func Reserve(rec IPAddress, input ReserveIPInput) (IPAddress, error) {
	if rec.Status != IPStatusFree {
		return rec, fmt.Errorf("%w: cannot reserve %s address %s", ErrInvalidState, rec.Status, rec.IP)
	}
	if strings.TrimSpace(input.ReservedBy) == "" {
		return rec, fmt.Errorf("%w: reserved_by is required", ErrInvalidInput)
	}

	next := rec
	next.Status = IPStatusReserved
	next.ReservedBy = input.ReservedBy
	next.ReservedUntil = input.Until
	return next, nil
}

// SortByIP orders records numerically by address.
func SortByIP(ips []IPAddress) {
	slices.SortStableFunc(ips, func(a, b IPAddress) int {
		return a.IP.Compare(b.IP)
	})
}

func parseSubnetInput(input CreateSubnetInput) (CreateSubnetRecord, error) {
	block, err := cidr.Parse(input.CIDR)
	if err != nil {
		return CreateSubnetRecord{}, err
	}
	if block.UsableHosts > MaxUsableHosts {
		return CreateSubnetRecord{}, fmt.Errorf("%w: %s has %d usable hosts, limit is %d", ErrSegmentTooLarge, block, block.UsableHosts, MaxUsableHosts)
	}

	rec := CreateSubnetRecord{
		Name:        strings.TrimSpace(input.Name),
		CIDR:        block.Prefix(),
		DNS:         input.DNS,
		VLAN:        input.VLAN,
		Tags:        input.Tags,
		Description: input.Description,
	}
	if rec.Name == "" {
		rec.Name = rec.CIDR.String()
	}
	if input.Gateway != "" {
		gw, err := parseIPv4(input.Gateway)
		if err != nil {
			return CreateSubnetRecord{}, err
		}
		if !rec.CIDR.Contains(gw) {
			return CreateSubnetRecord{}, fmt.Errorf("%w: gateway %s outside %s", ErrInvalidInput, gw, rec.CIDR)
		}
		rec.Gateway = gw
	}
	if err := validateVLAN(rec.VLAN); err != nil {
		return CreateSubnetRecord{}, err
	}
	for _, dns := range rec.DNS {
		if _, err := parseIPv4(dns); err != nil {
			return CreateSubnetRecord{}, err
		}
	}

	return rec, nil
}

func parseIPv4(s string) (netip.Addr, error) {
	n, err := cidr.IPToLong(s)
	if err != nil {
		return netip.Addr{}, err
	}
	return cidr.LongToAddr(n), nil
}

func validateVLAN(vlan *int) error {
	if vlan != nil && (*vlan < 1 || *vlan > 4094) {
		return fmt.Errorf("%w: vlan %d out of range 1-4094", ErrInvalidInput, *vlan)
	}
	return nil
}
