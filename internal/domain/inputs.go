package domain

import (
	"net/netip"
	"time"
)

type CreateSubnetInput struct {
	Name        string
	CIDR        string
	Gateway     string
	DNS         []string
	VLAN        *int
	Tags        []string
	Description string
}

// CreateSubnetRecord is a validated subnet ready to be persisted.
type CreateSubnetRecord struct {
	Name        string
	CIDR        netip.Prefix
	Gateway     netip.Addr
	DNS         []string
	VLAN        *int
	Tags        []string
	Description string
}

// UpdateSubnetInput leaves nil fields untouched. An empty Gateway string
// removes the gateway.
type UpdateSubnetInput struct {
	Name        *string
	Gateway     *string
	DNS         *[]string
	VLAN        *int
	Tags        *[]string
	Description *string
}

type UpdateIPInput struct {
	Hostname *string
	Notes    *string
}

type AssignIPInput struct {
	DeviceID DeviceID
	Hostname string
	MAC      string
}

type ReserveIPInput struct {
	ReservedBy string
	Until      *time.Time
}

// IPFilter narrows a subnet's address listing.
type IPFilter struct {
	Status   IPStatus
	SortByIP bool
	Limit    int
	Offset   int
}
