package http

import (
	"net/http"
	"strings"

	"github.com/Flarenzy/ipam-monitor/internal/auth"
)

// @Summary Get ip by UUID
// @Tags ips
// @Produce json
// @Param uuid path string true "UUID of the ip"
// @Success 200 {object} IPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ips/{uuid} [get]
func (a *API) handleGetIP(w http.ResponseWriter, r *http.Request) {
	id, err := parseIPID(r)
	if err != nil {
		a.respondError(w, r, "parsing ip id", err)
		return
	}

	ip, err := a.networks.GetIP(r.Context(), id)
	if err != nil {
		a.respondError(w, r, "reading ip", err)
		return
	}
	a.respond(w, r, http.StatusOK, ipToResponse(ip))
}

// @Summary Update ip details
// @Tags ips
// @Accept json
// @Produce json
// @Param uuid path string true "UUID of the ip to be updated."
// @Param payload body UpdateIPRequest true "Details to change"
// @Success 200 {object} IPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ips/{uuid} [patch]
func (a *API) handleUpdateIP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	id, err := parseIPID(r)
	if err != nil {
		a.respondError(w, r, "parsing ip id", err)
		return
	}
	req, err := decode[UpdateIPRequest](r)
	if err != nil {
		a.respondError(w, r, "unmarshaling ip update", errBadRequest)
		return
	}

	ip, err := a.networks.UpdateIP(r.Context(), id, req.toInput())
	if err != nil {
		a.respondError(w, r, "updating ip", err)
		return
	}
	a.respond(w, r, http.StatusOK, ipToResponse(ip))
}

// @Summary Assign ip to a device
// @Tags ips
// @Accept json
// @Produce json
// @Param uuid path string true "UUID of the ip"
// @Param payload body AssignIPRequest true "Device to assign"
// @Success 200 {object} IPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ips/{uuid}/assign [post]
func (a *API) handleAssignIP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	id, err := parseIPID(r)
	if err != nil {
		a.respondError(w, r, "parsing ip id", err)
		return
	}
	req, err := decode[AssignIPRequest](r)
	if err != nil {
		a.respondError(w, r, "unmarshaling assignment", errBadRequest)
		return
	}

	ip, err := a.networks.AssignIP(r.Context(), id, req.toInput())
	if err != nil {
		a.respondError(w, r, "assigning ip", err)
		return
	}
	a.respond(w, r, http.StatusOK, ipToResponse(ip))
}

// @Summary Release ip
// @Tags ips
// @Produce json
// @Param uuid path string true "UUID of the ip"
// @Success 200 {object} IPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ips/{uuid}/release [post]
func (a *API) handleReleaseIP(w http.ResponseWriter, r *http.Request) {
	id, err := parseIPID(r)
	if err != nil {
		a.respondError(w, r, "parsing ip id", err)
		return
	}

	ip, err := a.networks.ReleaseIP(r.Context(), id)
	if err != nil {
		a.respondError(w, r, "releasing ip", err)
		return
	}
	a.respond(w, r, http.StatusOK, ipToResponse(ip))
}

// @Summary Reserve ip
// @Tags ips
// @Accept json
// @Produce json
// @Param uuid path string true "UUID of the ip"
// @Param payload body ReserveIPRequest true "Reservation"
// @Success 200 {object} IPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ips/{uuid}/reserve [post]
func (a *API) handleReserveIP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	id, err := parseIPID(r)
	if err != nil {
		a.respondError(w, r, "parsing ip id", err)
		return
	}
	req, err := decode[ReserveIPRequest](r)
	if err != nil {
		a.respondError(w, r, "unmarshaling reservation", errBadRequest)
		return
	}
	if strings.TrimSpace(req.ReservedBy) == "" {
		if principal, ok := auth.PrincipalFromContext(r.Context()); ok {
			req.ReservedBy = principal.Actor()
		}
	}

	ip, err := a.networks.ReserveIP(r.Context(), id, req.toInput())
	if err != nil {
		a.respondError(w, r, "reserving ip", err)
		return
	}
	a.respond(w, r, http.StatusOK, ipToResponse(ip))
}
