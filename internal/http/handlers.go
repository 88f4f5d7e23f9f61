package http

import (
	"net/http"
)

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "db unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if a.health != nil {
		if err := a.health.Ping(ctx); err != nil {
			a.Logger.ErrorContext(ctx, "db ping failed", "err", err.Error())
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary List subnets
// @Tags subnets
// @Produce json
// @Success 200 {array} SubnetResponse
// @Failure 500 {object} ErrorResponse
// @Router /subnets [get]
func (a *API) handleListSubnets(w http.ResponseWriter, r *http.Request) {
	subnets, err := a.networks.ListSubnets(r.Context())
	if err != nil {
		a.respondError(w, r, "listing subnets", err)
		return
	}
	a.respond(w, r, http.StatusOK, subnetsToResponse(subnets))
}

// @Summary Create subnet
// @Description Creates the subnet together with one address record per usable host.
// @Tags subnets
// @Accept json
// @Produce json
// @Param subnet body CreateSubnetRequest true "Subnet payload"
// @Success 201 {object} SubnetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /subnets [post]
func (a *API) handleCreateSubnet(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	req, err := decode[CreateSubnetRequest](r)
	if err != nil {
		a.respondError(w, r, "unmarshaling subnet from request", errBadRequest)
		return
	}

	subnet, err := a.networks.CreateSubnet(r.Context(), req.toInput())
	if err != nil {
		a.respondError(w, r, "creating subnet", err)
		return
	}
	a.respond(w, r, http.StatusCreated, subnetToResponse(subnet))
}

// @Summary Get subnet by ID
// @Tags subnets
// @Produce json
// @Param id path int true "Subnet ID"
// @Success 200 {object} SubnetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /subnets/{id} [get]
func (a *API) handleGetSubnetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respondError(w, r, "parsing subnet id", err)
		return
	}

	subnet, err := a.networks.GetSubnet(r.Context(), id)
	if err != nil {
		a.respondError(w, r, "reading subnet", err)
		return
	}
	a.respond(w, r, http.StatusOK, subnetToResponse(subnet))
}

// @Summary Update subnet
// @Description The CIDR is immutable. Changing the gateway moves the gateway status between address records.
// @Tags subnets
// @Accept json
// @Produce json
// @Param id path int true "Subnet ID"
// @Param subnet body UpdateSubnetRequest true "Fields to change"
// @Success 200 {object} SubnetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /subnets/{id} [patch]
func (a *API) handleUpdateSubnet(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respondError(w, r, "parsing subnet id", err)
		return
	}

	req, err := decode[UpdateSubnetRequest](r)
	if err != nil {
		a.respondError(w, r, "unmarshaling subnet update", errBadRequest)
		return
	}

	subnet, err := a.networks.UpdateSubnet(r.Context(), id, req.toInput())
	if err != nil {
		a.respondError(w, r, "updating subnet", err)
		return
	}
	a.respond(w, r, http.StatusOK, subnetToResponse(subnet))
}

// @Summary Delete subnet
// @Description Refused while any address of the subnet is in use.
// @Tags subnets
// @Param id path int true "Subnet ID of the subnet to delete."
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /subnets/{id} [delete]
func (a *API) handleDeleteSubnetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respondError(w, r, "parsing subnet id", err)
		return
	}

	if err := a.networks.DeleteSubnet(r.Context(), id); err != nil {
		a.respondError(w, r, "deleting subnet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List ips by subnet ID
// @Tags subnets
// @Produce json
// @Param id path int true "Subnet ID"
// @Param status query string false "Only addresses in this status" Enums(free, reserved, in_use, blocked, gateway)
// @Param sort query string false "Sort order" Enums(ip)
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} IPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /subnets/{id}/ips [get]
func (a *API) handleListIPsBySubnetID(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respondError(w, r, "parsing subnet id", err)
		return
	}
	filter, err := parseIPFilter(r)
	if err != nil {
		a.respondError(w, r, "parsing ip filter", err)
		return
	}

	ips, err := a.networks.ListIPs(r.Context(), id, filter)
	if err != nil {
		a.respondError(w, r, "listing ips by subnet id", err)
		return
	}
	a.respond(w, r, http.StatusOK, ipsToResponse(ips))
}
