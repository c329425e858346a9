package middleware

import (
	"net/http"

	"github.com/example/shophub/internal/auth"
)

// RequireAccess gates a protected destination on the session's auth state.
// Authenticated and guest visitors pass through; while the gate is still
// loading the response defers with 202 rather than redirecting; everyone
// else gets 401 with the login entry point and the originally requested path
// so a client can return after signing in (the jump back is the client's
// call, never automatic).
func RequireAccess(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())

			switch sess.Gate.Allow() {
			case auth.AccessGranted:
				next.ServeHTTP(w, r)
			case auth.AccessPending:
				respondJSON(w, http.StatusAccepted, map[string]string{
					"status": "pending",
				})
			default:
				respondJSON(w, http.StatusUnauthorized, map[string]string{
					"error":    "authentication required",
					"redirect": loginPath,
					"from":     r.URL.Path,
				})
			}
		})
	}
}
