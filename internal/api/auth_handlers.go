package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/shophub/internal/api/middleware"
	"github.com/example/shophub/internal/identity"
)

// AuthHandlers exposes the session's auth gate over HTTP.
type AuthHandlers struct{}

func NewAuthHandlers() *AuthHandlers {
	return &AuthHandlers{}
}

// SignInRequest is the sign-in request body.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthStateResponse reports the gate's state and profile, if any.
type AuthStateResponse struct {
	State   string            `json:"state"`
	Profile *identity.Profile `json:"profile,omitempty"`
}

// SignIn performs an interactive sign-in through the identity provider. A
// failure leaves the gate untouched and is surfaced to the client.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := sess.Gate.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			respondError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		respondError(w, "sign-in failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	respondJSON(w, http.StatusOK, AuthStateResponse{
		State:   sess.Gate.State().String(),
		Profile: profile,
	})
}

// ContinueAsGuest persists guest mode for this session.
func (h *AuthHandlers) ContinueAsGuest(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	sess.Gate.ContinueAsGuest()
	respondJSON(w, http.StatusOK, AuthStateResponse{
		State:   sess.Gate.State().String(),
		Profile: sess.Gate.Profile(),
	})
}

// SignOut ends the provider session and clears guest mode. Provider failures
// are surfaced; the gate is left unchanged in that case.
func (h *AuthHandlers) SignOut(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	if err := sess.Gate.SignOut(r.Context()); err != nil {
		respondError(w, "sign-out failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	respondJSON(w, http.StatusOK, AuthStateResponse{
		State: sess.Gate.State().String(),
	})
}

// Me reports the current auth state.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	respondJSON(w, http.StatusOK, AuthStateResponse{
		State:   sess.Gate.State().String(),
		Profile: sess.Gate.Profile(),
	})
}
