package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/Flarenzy/ipam-monitor/internal/probe"
)

const testIPID = "550e8400-e29b-41d4-a716-446655440000"

func newHandlerTestAPI(networks domain.NetworkService, pings domain.PingService, healthErr error) *API {
	return NewAPI(discardLogger(), stubHealthChecker{err: healthErr}, networks, pings, nil)
}

func serve(api *API, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	return rec
}

func TestReadyzReturnsServiceUnavailableWhenHealthCheckFails(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{}, context.Canceled)

	rec := serve(api, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestHealthzReturnsOK(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{}, nil)

	rec := serve(api, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestGetSubnetByIDReturnsNotFound(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{
		getSubnetFn: func(context.Context, int64) (domain.Subnet, error) {
			return domain.Subnet{}, domain.ErrSubnetNotFound
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodGet, "/api/v1/subnets/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "subnet not found") {
		t.Fatalf("expected subnet not found body, got %q", rec.Body.String())
	}
}

func TestGetSubnetByIDRejectsNonNumericID(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{}, nil)

	rec := serve(api, http.MethodGet, "/api/v1/subnets/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCreateSubnetPassesPayloadToService(t *testing.T) {
	var got domain.CreateSubnetInput
	api := newHandlerTestAPI(stubNetworkService{
		createSubnetFn: func(_ context.Context, input domain.CreateSubnetInput) (domain.Subnet, error) {
			got = input
			return domain.Subnet{
				ID:      3,
				Name:    input.Name,
				CIDR:    netip.MustParsePrefix(input.CIDR),
				Gateway: netip.MustParseAddr(input.Gateway),
			}, nil
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodPost, "/api/v1/subnets", `{"name":"office","cidr":"10.0.0.0/24","gateway":"10.0.0.1","vlan":20}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if got.CIDR != "10.0.0.0/24" || got.VLAN == nil || *got.VLAN != 20 {
		t.Fatalf("unexpected input %+v", got)
	}

	var resp SubnetResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 3 || resp.Gateway != "10.0.0.1" || resp.DNS == nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCreateSubnetErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid format", err: fmt.Errorf("%w: cidr %q", domain.ErrInvalidFormat, "bad"), want: http.StatusBadRequest},
		{name: "too large", err: domain.ErrSegmentTooLarge, want: http.StatusBadRequest},
		{name: "overlap", err: domain.ErrConflict, want: http.StatusConflict},
		{name: "internal", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newHandlerTestAPI(stubNetworkService{
				createSubnetFn: func(context.Context, domain.CreateSubnetInput) (domain.Subnet, error) {
					return domain.Subnet{}, tt.err
				},
			}, stubPingService{}, nil)

			rec := serve(api, http.MethodPost, "/api/v1/subnets", `{"cidr":"10.0.0.0/24"}`)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestInternalErrorsDoNotLeak(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{
		listSubnetsFn: func(context.Context) ([]domain.Subnet, error) {
			return nil, fmt.Errorf("dial tcp 10.1.1.1:5432: connection refused")
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodGet, "/api/v1/subnets", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.1.1.1") {
		t.Fatalf("internal error leaked: %q", rec.Body.String())
	}
}

func TestCreateSubnetRejectsUnknownFields(t *testing.T) {
	called := false
	api := newHandlerTestAPI(stubNetworkService{
		createSubnetFn: func(context.Context, domain.CreateSubnetInput) (domain.Subnet, error) {
			called = true
			return domain.Subnet{}, nil
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodPost, "/api/v1/subnets", `{"cidr":"10.0.0.0/24","mask":"255.255.255.0"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if called {
		t.Fatal("service must not be called for a malformed body")
	}
}

func TestDeleteSubnetInUseReturnsConflict(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{
		deleteSubnetFn: func(context.Context, int64) error {
			return fmt.Errorf("%w: 3 addresses in use", domain.ErrResourceInUse)
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodDelete, "/api/v1/subnets/1", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestDeleteSubnetReturnsNoContent(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{}, nil)

	rec := serve(api, http.MethodDelete, "/api/v1/subnets/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestUpdateSubnetPassesOnlyProvidedFields(t *testing.T) {
	var got domain.UpdateSubnetInput
	api := newHandlerTestAPI(stubNetworkService{
		updateSubnetFn: func(_ context.Context, _ int64, input domain.UpdateSubnetInput) (domain.Subnet, error) {
			got = input
			return domain.Subnet{ID: 1, CIDR: netip.MustParsePrefix("10.0.0.0/24")}, nil
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodPatch, "/api/v1/subnets/1", `{"gateway":""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if got.Gateway == nil || *got.Gateway != "" || got.Name != nil || got.DNS != nil {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestListIPsParsesFilter(t *testing.T) {
	var got domain.IPFilter
	api := newHandlerTestAPI(stubNetworkService{
		listIPsFn: func(_ context.Context, _ int64, filter domain.IPFilter) ([]domain.IPAddress, error) {
			got = filter
			return []domain.IPAddress{{ID: testIPID, IP: netip.MustParseAddr("10.0.0.1"), Status: domain.IPStatusFree}}, nil
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodGet, "/api/v1/subnets/1/ips?status=free&sort=ip&limit=10&offset=20", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	want := domain.IPFilter{Status: domain.IPStatusFree, SortByIP: true, Limit: 10, Offset: 20}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestListIPsRejectsBadQuery(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{}, nil)

	for _, q := range []string{"status=taken", "sort=mac", "limit=-1", "offset=x"} {
		rec := serve(api, http.MethodGet, "/api/v1/subnets/1/ips?"+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected %d, got %d", q, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestGetIPRejectsInvalidUUID(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{}, nil)

	rec := serve(api, http.MethodGet, "/api/v1/ips/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestAssignIPStaleWriteReturnsConflict(t *testing.T) {
	var got domain.AssignIPInput
	api := newHandlerTestAPI(stubNetworkService{
		assignIPFn: func(_ context.Context, id domain.IPAddressID, input domain.AssignIPInput) (domain.IPAddress, error) {
			got = input
			if id != testIPID {
				t.Fatalf("unexpected id %s", id)
			}
			return domain.IPAddress{}, fmt.Errorf("%w: status changed from free to in_use", domain.ErrConflict)
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodPost, "/api/v1/ips/"+testIPID+"/assign", `{"device_id":"dev-1","hostname":"web-1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected %d, got %d", http.StatusConflict, rec.Code)
	}
	if got.DeviceID != "dev-1" || got.Hostname != "web-1" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestReleaseIPInvalidStateReturnsConflict(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{
		releaseIPFn: func(context.Context, domain.IPAddressID) (domain.IPAddress, error) {
			return domain.IPAddress{}, domain.ErrInvalidState
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodPost, "/api/v1/ips/"+testIPID+"/release", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestReserveIPReturnsRecord(t *testing.T) {
	until := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	api := newHandlerTestAPI(stubNetworkService{
		reserveIPFn: func(_ context.Context, id domain.IPAddressID, input domain.ReserveIPInput) (domain.IPAddress, error) {
			if input.Until == nil || !input.Until.Equal(until) {
				t.Fatalf("unexpected until %v", input.Until)
			}
			return domain.IPAddress{ID: id, IP: netip.MustParseAddr("10.0.0.9"), Status: domain.IPStatusReserved, ReservedBy: input.ReservedBy}, nil
		},
	}, stubPingService{}, nil)

	rec := serve(api, http.MethodPost, "/api/v1/ips/"+testIPID+"/reserve", `{"reserved_by":"netops","until":"2026-06-01T00:00:00Z"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp IPResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "reserved" || resp.ReservedBy != "netops" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPingIPRendersLatencyInMilliseconds(t *testing.T) {
	latency := 1500 * time.Microsecond
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{
		pingIPFn: func(_ context.Context, id domain.IPAddressID) (domain.PingEntry, error) {
			return domain.PingEntry{
				IPID:    id,
				IP:      netip.MustParseAddr("10.0.0.10"),
				Status:  probe.StatusOnline,
				Method:  probe.MethodICMP,
				Latency: &latency,
			}, nil
		},
	}, nil)

	rec := serve(api, http.MethodPost, "/api/v1/ping/ips/"+testIPID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp PingResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.LatencyMs == nil || *resp.LatencyMs != 1.5 || resp.Method != "icmp" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPingSubnetPassesConcurrency(t *testing.T) {
	var gotConcurrency int
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{
		pingSubnetFn: func(_ context.Context, id int64, concurrency int) (domain.SegmentPingReport, error) {
			gotConcurrency = concurrency
			return domain.SegmentPingReport{SubnetID: id, Summary: probe.Summary{Total: 2, Online: 1, Offline: 1}}, nil
		},
	}, nil)

	rec := serve(api, http.MethodPost, "/api/v1/ping/subnets/7?concurrency=32", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if gotConcurrency != 32 {
		t.Fatalf("expected concurrency 32, got %d", gotConcurrency)
	}

	var resp SubnetPingResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SubnetID != 7 || resp.Summary.Total != 2 || resp.Results == nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPingHistoryDefaultsLimit(t *testing.T) {
	var gotLimit int
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{
		historyFn: func(_ context.Context, _ domain.IPAddressID, limit int) (domain.PingHistory, error) {
			gotLimit = limit
			return domain.PingHistory{Stats: domain.PingStats{Total: 4, Up: 3, UptimePercent: 75}}, nil
		},
	}, nil)

	rec := serve(api, http.MethodGet, "/api/v1/ping/ips/"+testIPID+"/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if gotLimit != domain.DefaultHistoryLimit {
		t.Fatalf("expected default limit, got %d", gotLimit)
	}
	if !strings.Contains(rec.Body.String(), `"uptime_percent":75`) {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestConflictsUsesHoursWindow(t *testing.T) {
	var gotWindow time.Duration
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{
		conflictsFn: func(_ context.Context, window time.Duration) ([]domain.AddressConflicts, error) {
			gotWindow = window
			return nil, nil
		},
	}, nil)

	rec := serve(api, http.MethodGet, "/api/v1/ping/conflicts?hours=6", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if gotWindow != 6*time.Hour {
		t.Fatalf("expected 6h window, got %s", gotWindow)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %q", rec.Body.String())
	}

	serve(api, http.MethodGet, "/api/v1/ping/conflicts", "")
	if gotWindow != 24*time.Hour {
		t.Fatalf("expected default 24h window, got %s", gotWindow)
	}
}

func TestConflictsRejectsZeroHours(t *testing.T) {
	called := false
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{
		conflictsFn: func(context.Context, time.Duration) ([]domain.AddressConflicts, error) {
			called = true
			return nil, nil
		},
	}, nil)

	for _, target := range []string{"/api/v1/ping/conflicts?hours=0", "/api/v1/ping/conflicts?hours=-3"} {
		rec := serve(api, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected %d, got %d", target, http.StatusBadRequest, rec.Code)
		}
	}
	if called {
		t.Fatal("expected service not to be called")
	}
}

func TestStartScanAcceptedAndRejected(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{
		status: domain.ScanStatus{State: domain.ScanRunning, StartedAt: &started},
	}, nil)

	rec := serve(api, http.MethodPost, "/api/v1/scans", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected %d, got %d", http.StatusAccepted, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"state":"running"`) {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	api = newHandlerTestAPI(stubNetworkService{}, stubPingService{
		startScanFn: func(context.Context) error { return domain.ErrScanInProgress },
	}, nil)
	rec = serve(api, http.MethodPost, "/api/v1/scans", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestCIDRCalculator(t *testing.T) {
	api := newHandlerTestAPI(stubNetworkService{}, stubPingService{}, nil)

	rec := serve(api, http.MethodGet, "/api/v1/cidr?cidr=192.168.1.0/24", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	var resp CIDRResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := CIDRResponse{
		CIDR:         "192.168.1.0/24",
		Network:      "192.168.1.0",
		Broadcast:    "192.168.1.255",
		Netmask:      "255.255.255.0",
		FirstUsable:  "192.168.1.1",
		LastUsable:   "192.168.1.254",
		PrefixLength: 24,
		TotalHosts:   256,
		UsableHosts:  254,
	}
	if resp != want {
		t.Fatalf("expected %+v, got %+v", want, resp)
	}

	for _, q := range []string{"", "?cidr=192.168.1.0", "?cidr=300.1.1.1/24"} {
		rec := serve(api, http.MethodGet, "/api/v1/cidr"+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected %d, got %d", q, http.StatusBadRequest, rec.Code)
		}
	}
}
