// Package cidr implements IPv4 CIDR arithmetic in unsigned 32-bit space.
package cidr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
	"regexp"
	"strconv"
	"strings"

)

var ErrInvalidFormat = errors.New("invalid format")

var cidrPattern = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}/\d{1,2}$`)

// Block is a parsed IPv4 network. For /31 and /32 UsableHosts is zero and
// FirstUsable/LastUsable are left at zero.
type Block struct {
	Network     uint32
	Broadcast   uint32
	FirstUsable uint32
	LastUsable  uint32
	Bits        int
	TotalHosts  uint64
	UsableHosts uint64
}

func Parse(cidr string) (Block, error) {
	cidr = strings.TrimSpace(cidr)
	if !cidrPattern.MatchString(cidr) {
		return Block{}, fmt.Errorf("%w: cidr %q", ErrInvalidFormat, cidr)
	}

	addr, bitsStr, _ := strings.Cut(cidr, "/")
	ip, err := IPToLong(addr)
	if err != nil {
		return Block{}, err
	}
	bits, err := strconv.Atoi(bitsStr)
	if err != nil || bits > 32 {
		return Block{}, fmt.Errorf("%w: prefix length %q", ErrInvalidFormat, bitsStr)
	}

	mask := Mask(bits)
	b := Block{
		Network:    ip & mask,
		Broadcast:  (ip & mask) | ^mask,
		Bits:       bits,
		TotalHosts: uint64(1) << (32 - bits),
	}
	if b.TotalHosts > 2 {
		b.UsableHosts = b.TotalHosts - 2
		b.FirstUsable = b.Network + 1
		b.LastUsable = b.Broadcast - 1
	}

	return b, nil
}

// Mask returns the netmask for a prefix length in [0, 32].
func Mask(bits int) uint32 {
	if bits <= 0 {
		return 0
	}
	if bits >= 32 {
		return ^uint32(0)
	}
	return ^uint32(0) << (32 - bits)
}

func LongToIP(n uint32) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	return netip.AddrFrom4(b).String()
}

func IPToLong(s string) (uint32, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: ip %q", ErrInvalidFormat, s)
	}

	var n uint32
	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return 0, fmt.Errorf("%w: ip %q", ErrInvalidFormat, s)
		}
		octet, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: ip %q", ErrInvalidFormat, s)
		}
		n = n<<8 | uint32(octet)
	}

	return n, nil
}

// Contains reports whether ip lies inside cidr. Parse failures of either
// argument report false.
func Contains(ip, cidr string) bool {
	b, err := Parse(cidr)
	if err != nil {
		return false
	}
	n, err := IPToLong(ip)
	if err != nil {
		return false
	}
	return b.Contains(n)
}

func (b Block) Contains(n uint32) bool {
	return n&Mask(b.Bits) == b.Network
}

// Hosts returns every usable address in ascending order.
func (b Block) Hosts() []string {
	if b.UsableHosts == 0 {
		return nil
	}

	out := make([]string, 0, b.UsableHosts)
	for i := uint64(b.FirstUsable); i <= uint64(b.LastUsable); i++ {
		out = append(out, LongToIP(uint32(i)))
	}
	return out
}

func (b Block) String() string {
	return fmt.Sprintf("%s/%d", LongToIP(b.Network), b.Bits)
}

func (b Block) Prefix() netip.Prefix {
	return netip.PrefixFrom(toAddr(b.Network), b.Bits)
}

func toAddr(n uint32) netip.Addr {
	var a [4]byte
	binary.BigEndian.PutUint32(a[:], n)
	return netip.AddrFrom4(a)
}

// AddrToLong converts an IPv4 netip.Addr. IPv4-mapped IPv6 addresses are unmapped.
func AddrToLong(addr netip.Addr) (uint32, error) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return 0, fmt.Errorf("%w: %s is not ipv4", ErrInvalidFormat, addr)
	}
	a := addr.As4()
	return binary.BigEndian.Uint32(a[:]), nil
}

func LongToAddr(n uint32) netip.Addr {
	return toAddr(n)
}
