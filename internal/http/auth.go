package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Flarenzy/ipam-monitor/internal/auth"
	"github.com/Flarenzy/ipam-monitor/internal/domain"
)

func isPublicPath(path string) bool {
	return path == "/healthz" || path == "/readyz" || path == "/metrics" || strings.HasPrefix(path, "/swagger/")
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func (a *API) authMiddleware(next http.Handler) http.Handler {
	if a.authenticator == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || tokenStr == "" {
			a.respondError(w, r, "rejecting request", fmt.Errorf("%w: missing token", domain.ErrUnauthorized))
			return
		}

		principal, err := a.authenticator.Authenticate(r.Context(), tokenStr)
		if err != nil {
			a.respondError(w, r, "rejecting request", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err))
			return
		}

		if a.writeRole != "" && isWriteMethod(r.Method) && !principal.HasRole(a.writeRole) {
			a.respondError(w, r, "rejecting request", fmt.Errorf("%w: role %q required", domain.ErrForbidden, a.writeRole))
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}
