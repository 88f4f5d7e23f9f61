package probe

import (
	"strings"
	"testing"
)

const procARPFixture = `IP address       HW type     Flags       HW address            Mask     Device
192.168.1.1      0x1         0x2         00:11:22:33:44:55     *        eth0
192.168.1.20     0x1         0x0         00:00:00:00:00:00     *        eth0
192.168.1.30     0x1         0x2         AA:BB:CC:DD:EE:0F     *        eth0
`

func TestParseProcARP(t *testing.T) {
	mac, ok := parseProcARP(strings.NewReader(procARPFixture), "192.168.1.30")
	if !ok || mac != "aa:bb:cc:dd:ee:0f" {
		t.Fatalf("unexpected lookup: %q %v", mac, ok)
	}
}

func TestParseProcARPSkipsIncompleteEntries(t *testing.T) {
	if _, ok := parseProcARP(strings.NewReader(procARPFixture), "192.168.1.20"); ok {
		t.Fatal("expected incomplete entry to be ignored")
	}
	if _, ok := parseProcARP(strings.NewReader(procARPFixture), "192.168.1.99"); ok {
		t.Fatal("expected missing entry to report false")
	}
}

func TestParseARPOutputBSD(t *testing.T) {
	out := []byte("? (192.168.1.1) at 0:11:2:33:44:55 on en0 ifscope [ethernet]\n? (192.168.1.9) at (incomplete) on en0 ifscope [ethernet]\n")
	mac, ok := parseARPOutput(out, bsdARPLine, "192.168.1.1")
	if !ok || mac != "00:11:02:33:44:55" {
		t.Fatalf("unexpected lookup: %q %v", mac, ok)
	}
	if _, ok := parseARPOutput(out, bsdARPLine, "192.168.1.9"); ok {
		t.Fatal("expected incomplete entry to be ignored")
	}
}

func TestParseARPOutputWindows(t *testing.T) {
	out := []byte("  192.168.1.1           00-11-22-33-44-55     dynamic\r\n")
	mac, ok := parseARPOutput(out, windowsARPLine, "192.168.1.1")
	if !ok || mac != "00:11:22:33:44:55" {
		t.Fatalf("unexpected lookup: %q %v", mac, ok)
	}
}

func TestNormalizeMAC(t *testing.T) {
	cases := map[string]string{
		"AA-BB-CC-DD-EE-FF": "aa:bb:cc:dd:ee:ff",
		"a:b:c:d:e:f":       "0a:0b:0c:0d:0e:0f",
	}
	for in, want := range cases {
		got, ok := NormalizeMAC(in)
		if !ok || got != want {
			t.Fatalf("%q: got %q %v, want %q", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "garbage", "00:00:00:00:00:00"} {
		if _, ok := NormalizeMAC(in); ok {
			t.Fatalf("%q: expected rejection", in)
		}
	}
}
