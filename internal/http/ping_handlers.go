package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/cidr"
	"github.com/Flarenzy/ipam-monitor/internal/domain"
)

const defaultConflictHours = 24

// @Summary Ping a single ip
// @Tags ping
// @Produce json
// @Param uuid path string true "UUID of the ip"
// @Success 200 {object} PingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ping/ips/{uuid} [post]
func (a *API) handlePingIP(w http.ResponseWriter, r *http.Request) {
	id, err := parseIPID(r)
	if err != nil {
		a.respondError(w, r, "parsing ip id", err)
		return
	}

	entry, err := a.pings.PingIP(r.Context(), id)
	if err != nil {
		a.respondError(w, r, "pinging ip", err)
		return
	}
	a.respond(w, r, http.StatusOK, pingToResponse(entry))
}

// @Summary Ping every address of a subnet
// @Tags ping
// @Produce json
// @Param id path int true "Subnet ID"
// @Param concurrency query int false "Parallel probes, default 16, max 64"
// @Success 200 {object} SubnetPingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ping/subnets/{id} [post]
func (a *API) handlePingSubnet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respondError(w, r, "parsing subnet id", err)
		return
	}
	concurrency, err := queryInt(r, "concurrency", 0)
	if err != nil {
		a.respondError(w, r, "parsing concurrency", err)
		return
	}

	report, err := a.pings.PingSubnet(r.Context(), id, concurrency)
	if err != nil {
		a.respondError(w, r, "pinging subnet", err)
		return
	}
	a.respond(w, r, http.StatusOK, SubnetPingResponse{
		SubnetID: report.SubnetID,
		Summary:  summaryToResponse(report.Summary),
		Results:  pingsToResponse(report.Entries),
	})
}

// @Summary Ping history of an ip
// @Tags ping
// @Produce json
// @Param uuid path string true "UUID of the ip"
// @Param limit query int false "Most recent entries, default 100, max 1000"
// @Success 200 {object} PingHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ping/ips/{uuid}/history [get]
func (a *API) handlePingHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIPID(r)
	if err != nil {
		a.respondError(w, r, "parsing ip id", err)
		return
	}
	limit, err := queryInt(r, "limit", domain.DefaultHistoryLimit)
	if err != nil {
		a.respondError(w, r, "parsing limit", err)
		return
	}

	history, err := a.pings.History(r.Context(), id, limit)
	if err != nil {
		a.respondError(w, r, "reading ping history", err)
		return
	}
	a.respond(w, r, http.StatusOK, historyToResponse(history))
}

// @Summary Recent MAC conflicts
// @Tags ping
// @Produce json
// @Param hours query int false "Look-back window in hours, at least 1, default 24"
// @Success 200 {array} ConflictResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ping/conflicts [get]
func (a *API) handleConflicts(w http.ResponseWriter, r *http.Request) {
	hours, err := queryInt(r, "hours", defaultConflictHours)
	if err == nil && hours == 0 {
		err = fmt.Errorf("%w: hours must be at least 1", domain.ErrInvalidInput)
	}
	if err != nil {
		a.respondError(w, r, "parsing hours", err)
		return
	}

	groups, err := a.pings.Conflicts(r.Context(), time.Duration(hours)*time.Hour)
	if err != nil {
		a.respondError(w, r, "listing conflicts", err)
		return
	}
	a.respond(w, r, http.StatusOK, conflictsToResponse(groups))
}

// @Summary Start a background scan of every subnet
// @Tags scans
// @Produce json
// @Success 202 {object} ScanStatusResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /scans [post]
func (a *API) handleStartScan(w http.ResponseWriter, r *http.Request) {
	if err := a.pings.StartScan(r.Context()); err != nil {
		a.respondError(w, r, "starting scan", err)
		return
	}
	a.respond(w, r, http.StatusAccepted, scanStatusToResponse(a.pings.ScanStatus()))
}

// @Summary Status of the last scan
// @Tags scans
// @Produce json
// @Success 200 {object} ScanStatusResponse
// @Router /scans/status [get]
func (a *API) handleScanStatus(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, http.StatusOK, scanStatusToResponse(a.pings.ScanStatus()))
}

// @Summary CIDR calculator
// @Tags cidr
// @Produce json
// @Param cidr query string true "IPv4 block, for example 192.168.1.0/24"
// @Success 200 {object} CIDRResponse
// @Failure 400 {object} ErrorResponse
// @Router /cidr [get]
func (a *API) handleCIDR(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("cidr")
	if raw == "" {
		a.respondError(w, r, "parsing cidr", fmt.Errorf("%w: cidr is required", domain.ErrInvalidInput))
		return
	}

	block, err := cidr.Parse(raw)
	if err != nil {
		a.respondError(w, r, "parsing cidr", err)
		return
	}
	a.respond(w, r, http.StatusOK, blockToResponse(block))
}
