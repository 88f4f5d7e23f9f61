package probe

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"
)

// NeighborTable resolves an IP address to the hardware address the kernel
// last learned for it. A missing entry is reported as ok=false, not an error.
type NeighborTable interface {
	Lookup(ctx context.Context, addr string) (mac string, ok bool)
}

var (
	// macOS/BSD: ? (192.168.1.1) at 0:11:22:33:44:55 on en0 ifscope [ethernet]
	bsdARPLine = regexp.MustCompile(`\((\d+\.\d+\.\d+\.\d+)\) at ([0-9a-fA-F:]+)`)
	// Windows: 192.168.1.1   00-11-22-33-44-55   dynamic
	windowsARPLine = regexp.MustCompile(`(\d+\.\d+\.\d+\.\d+)\s+([0-9a-fA-F-]{17})`)
)

const procARPPath = "/proc/net/arp"

type SystemNeighborTable struct {
	ProcPath string
	Timeout  time.Duration
}

func NewSystemNeighborTable() *SystemNeighborTable {
	return &SystemNeighborTable{ProcPath: procARPPath, Timeout: 2 * time.Second}
}

func (t *SystemNeighborTable) Lookup(ctx context.Context, addr string) (string, bool) {
	if runtime.GOOS == "linux" {
		f, err := os.Open(t.ProcPath)
		if err != nil {
			return "", false
		}
		defer f.Close()
		return parseProcARP(f, addr)
	}

	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	args := []string{"-an"}
	pattern := bsdARPLine
	if runtime.GOOS == "windows" {
		args = []string{"-a", addr}
		pattern = windowsARPLine
	}
	out, err := exec.CommandContext(ctx, "arp", args...).Output()
	if err != nil {
		return "", false
	}
	return parseARPOutput(out, pattern, addr)
}

// parseProcARP reads the Linux neighbor table format:
//
//	IP address       HW type     Flags       HW address            Mask     Device
//	192.168.1.1      0x1         0x2         00:11:22:33:44:55     *        eth0
func parseProcARP(r io.Reader, addr string) (string, bool) {
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != addr {
			continue
		}
		// 0x0 marks an incomplete entry
		if fields[2] == "0x0" {
			return "", false
		}
		return NormalizeMAC(fields[3])
	}
	return "", false
}

func parseARPOutput(out []byte, pattern *regexp.Regexp, addr string) (string, bool) {
	for _, line := range bytes.Split(out, []byte("\n")) {
		m := pattern.FindSubmatch(line)
		if m == nil || string(m[1]) != addr {
			continue
		}
		return NormalizeMAC(string(m[2]))
	}
	return "", false
}

// NormalizeMAC renders a hardware address as lower-case colon separated
// octets. All-zero and unparseable addresses report ok=false.
func NormalizeMAC(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", ":")
	parts := strings.Split(s, ":")
	if len(parts) == 6 {
		// BSD arp drops leading zeros ("0:11:2:...").
		for i, p := range parts {
			if len(p) == 1 {
				parts[i] = "0" + p
			}
		}
		s = strings.Join(parts, ":")
	}

	hw, err := net.ParseMAC(s)
	if err != nil || len(hw) != 6 {
		return "", false
	}
	if bytes.Equal(hw, make(net.HardwareAddr, 6)) {
		return "", false
	}
	return hw.String(), true
}
