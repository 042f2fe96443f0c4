package handlers

import (
	"context"
	"net/http"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/auth"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
)

type principalContextKey struct{}

func principalFromContext(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(auth.Principal)
	return principal, ok
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// decoded principal to the request context.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.FromAuthorizationHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			return
		}
		principal, err := h.verifier.Verify(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey{}, *principal)
		ctx = logging.WithLogger(ctx, logging.FromContext(ctx, h.logger).With("user", principal.SubjectID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates admin-only routes on the admin claim carried by the
// verified token.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			return
		}
		if !principal.Admin {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "Permission denied"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
