package domain

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/probe"
)

type networkService struct {
	subnets SubnetRepository
	ips     IPRepository
	devices DeviceRepository
}

func NewNetworkService(subnets SubnetRepository, ips IPRepository, devices DeviceRepository) NetworkService {
	return &networkService{
		subnets: subnets,
		ips:     ips,
		devices: devices,
	}
}

func (s *networkService) ListSubnets(ctx context.Context) ([]Subnet, error) {
	return s.subnets.List(ctx)
}

func (s *networkService) CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error) {
	record, err := parseSubnetInput(input)
	if err != nil {
		return Subnet{}, err
	}

	addresses, err := GenerateAddresses(Subnet{CIDR: record.CIDR, Gateway: record.Gateway})
	if err != nil {
		return Subnet{}, err
	}

	return s.subnets.CreateWithAddresses(ctx, record, addresses)
}

func (s *networkService) GetSubnet(ctx context.Context, id int64) (Subnet, error) {
	return s.subnets.FindByID(ctx, id)
}

func (s *networkService) UpdateSubnet(ctx context.Context, id int64, input UpdateSubnetInput) (Subnet, error) {
	subnet, err := s.subnets.FindByID(ctx, id)
	if err != nil {
		return Subnet{}, err
	}

	next := subnet
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return Subnet{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		next.Name = name
	}
	if input.Description != nil {
		next.Description = *input.Description
	}
	if input.DNS != nil {
		for _, dns := range *input.DNS {
			if _, err := parseIPv4(dns); err != nil {
				return Subnet{}, err
			}
		}
		next.DNS = *input.DNS
	}
	if input.Tags != nil {
		next.Tags = *input.Tags
	}
	if input.VLAN != nil {
		if err := validateVLAN(input.VLAN); err != nil {
			return Subnet{}, err
		}
		next.VLAN = input.VLAN
	}

	if input.Gateway == nil {
		return s.subnets.Update(ctx, next)
	}

	var newGW netip.Addr
	if *input.Gateway != "" {
		newGW, err = parseIPv4(*input.Gateway)
		if err != nil {
			return Subnet{}, err
		}
		if !subnet.CIDR.Contains(newGW) {
			return Subnet{}, fmt.Errorf("%w: gateway %s outside %s", ErrInvalidInput, newGW, subnet.CIDR)
		}
	}
	if newGW == subnet.Gateway {
		return s.subnets.Update(ctx, next)
	}
	if newGW.IsValid() && onPrefixEdge(subnet.CIDR, newGW) {
		return Subnet{}, fmt.Errorf("%w: gateway %s is the network or broadcast address of %s", ErrInvalidInput, newGW, subnet.CIDR)
	}

	if newGW.IsValid() {
		rec, err := s.ips.FindByAddress(ctx, id, newGW)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Subnet{}, fmt.Errorf("%w: gateway %s is not in the address pool", ErrInvalidInput, newGW)
			}
			return Subnet{}, err
		}
		if rec.Status != IPStatusFree && rec.Status != IPStatusGateway {
			return Subnet{}, fmt.Errorf("%w: gateway candidate %s is %s", ErrInvalidState, newGW, rec.Status)
		}
	}

	next.Gateway = newGW
	return s.subnets.ReassignGateway(ctx, next, subnet.Gateway, newGW)
}

func (s *networkService) DeleteSubnet(ctx context.Context, id int64) error {
	if _, err := s.subnets.FindByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.ips.CountByStatus(ctx, id, IPStatusInUse)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("%w: %d addresses still in use", ErrResourceInUse, inUse)
	}

	deleted, err := s.subnets.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *networkService) ListIPs(ctx context.Context, subnetID int64, filter IPFilter) ([]IPAddress, error) {
	if _, err := s.subnets.FindByID(ctx, subnetID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSubnetNotFound
		}
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}

	ips, err := s.ips.ListBySubnetID(ctx, subnetID, filter)
	if err != nil {
		return nil, err
	}
	if filter.SortByIP {
		SortByIP(ips)
	}
	return ips, nil
}

func (s *networkService) GetIP(ctx context.Context, id IPAddressID) (IPAddress, error) {
	return s.ips.FindByID(ctx, id)
}

func (s *networkService) UpdateIP(ctx context.Context, id IPAddressID, input UpdateIPInput) (IPAddress, error) {
	if _, err := s.ips.FindByID(ctx, id); err != nil {
		return IPAddress{}, err
	}
	return s.ips.UpdateDetails(ctx, id, input)
}

func (s *networkService) AssignIP(ctx context.Context, id IPAddressID, input AssignIPInput) (IPAddress, error) {
	rec, err := s.ips.FindByID(ctx, id)
	if err != nil {
		return IPAddress{}, err
	}
	if input.MAC != "" {
		mac, ok := probe.NormalizeMAC(input.MAC)
		if !ok {
			return IPAddress{}, fmt.Errorf("%w: invalid mac %q", ErrInvalidInput, input.MAC)
		}
		input.MAC = mac
	}

	next, err := Assign(rec, input)
	if err != nil {
		return IPAddress{}, err
	}

	if s.devices != nil {
		if _, err := s.devices.FindByID(ctx, input.DeviceID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return IPAddress{}, fmt.Errorf("%w: device %s not found", ErrInvalidInput, input.DeviceID)
			}
			return IPAddress{}, err
		}
	}

	return s.ips.CompareAndSwap(ctx, rec.Status, next)
}

func (s *networkService) ReleaseIP(ctx context.Context, id IPAddressID) (IPAddress, error) {
	rec, err := s.ips.FindByID(ctx, id)
	if err != nil {
		return IPAddress{}, err
	}

	next, err := Release(rec)
	if err != nil {
		return IPAddress{}, err
	}
	return s.ips.CompareAndSwap(ctx, rec.Status, next)
}

func (s *networkService) ReserveIP(ctx context.Context, id IPAddressID, input ReserveIPInput) (IPAddress, error) {
	rec, err := s.ips.FindByID(ctx, id)
	if err != nil {
		return IPAddress{}, err
	}

	next, err := Reserve(rec, input)
	if err != nil {
		return IPAddress{}, err
	}
	return s.ips.CompareAndSwap(ctx, rec.Status, next)
}

func (s *networkService) ReclaimExpiredReservations(ctx context.Context, now time.Time) (int64, error) {
	return s.ips.ReleaseExpiredReservations(ctx, now)
}
