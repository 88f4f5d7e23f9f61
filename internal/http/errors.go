package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
)

var errBadRequest = fmt.Errorf("%w: bad request", domain.ErrInvalidInput)

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrSegmentTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrSubnetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrResourceInUse),
		errors.Is(err, domain.ErrScanInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the failure and writes the mapped status. Internal
// errors never leak their text to the client.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	status := statusForError(err)
	resp := ErrorResponse{Error: err.Error()}
	if status == http.StatusInternalServerError {
		a.Logger.ErrorContext(ctx, msg, "err", err.Error(), "path", r.URL.Path)
		resp.Error = "internal server error"
	} else {
		a.Logger.DebugContext(ctx, msg, "err", err.Error(), "status", status, "path", r.URL.Path)
	}

	if err := encode(w, r, status, resp); err != nil {
		a.Logger.ErrorContext(ctx, "cant respond to client", "err", err.Error())
	}
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := encode(w, r, status, v); err != nil {
		a.Logger.ErrorContext(r.Context(), "cant respond to client", "err", err.Error())
	}
}
