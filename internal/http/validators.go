package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/google/uuid"
)

func parsePathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, name, raw)
	}
	return id, nil
}

func parseIPID(r *http.Request) (domain.IPAddressID, error) {
	raw := r.PathValue("uuid")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: ip id %q", domain.ErrInvalidInput, raw)
	}
	return domain.IPAddressID(id.String()), nil
}

// queryInt returns def when the parameter is absent. Negative values are
// rejected.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, key, raw)
	}
	return n, nil
}

func parseIPFilter(r *http.Request) (domain.IPFilter, error) {
	var filter domain.IPFilter
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status := domain.IPStatus(raw)
		if !status.Valid() {
			return filter, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, raw)
		}
		filter.Status = status
	}

	switch q.Get("sort") {
	case "":
	case "ip":
		filter.SortByIP = true
	default:
		return filter, fmt.Errorf("%w: sort %q", domain.ErrInvalidInput, q.Get("sort"))
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		return filter, err
	}
	return filter, nil
}
