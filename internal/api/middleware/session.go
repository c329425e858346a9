// Package middleware binds requests to visitor sessions and gates access to
// protected destinations.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/example/shophub/internal/auth"
	"github.com/example/shophub/internal/session"
)

// SessionCookie carries the signed session token.
const SessionCookie = "shophub_session"

type contextKey string

const sessionContextKey contextKey = "session"

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Session resolves the visitor's session from the signed cookie, creating a
// new session (and setting the cookie) for first-time or invalid-token
// visitors.
func Session(manager *session.Manager, tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				if id, err := tokens.Validate(cookie.Value); err == nil {
					sessionID = id
				}
			}

			sess := manager.GetOrCreate(sessionID)
			if sess.ID != sessionID {
				token, expiresAt, err := tokens.Issue(sess.ID)
				if err == nil {
					http.SetCookie(w, &http.Cookie{
						Name:     SessionCookie,
						Value:    token,
						Path:     "/",
						Expires:  expiresAt,
						HttpOnly: true,
						Secure:   r.TLS != nil,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the visitor session from the request context. Calling
// it from a handler not wrapped by Session is a wiring defect, not a runtime
// condition, and panics.
func GetSession(ctx context.Context) *session.Session {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	if !ok {
		panic("middleware: GetSession called outside the Session middleware")
	}
	return sess
}
