// Package identity defines the identity provider boundary and a local
// credential-backed implementation.
package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Profile is the resolved identity of a signed-in user.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Provider is one visitor's connection to the identity backend. Sign-in and
// sign-out are attempted exactly once per call; there is no retry logic.
type Provider interface {
	// SignIn resolves a profile or fails. On success subscribers are
	// notified of the new session.
	SignIn(ctx context.Context, email, password string) (*Profile, error)

	// SignOut ends the active session, if any. Subscribers are notified.
	SignOut(ctx context.Context) error

	// Subscribe registers fn for session-change notifications. fn is invoked
	// asynchronously with the current session shortly after subscribing and
	// again on every change, in the order the provider emits them. The
	// returned function unsubscribes.
	Subscribe(fn func(*Profile)) (unsubscribe func())
}

// Service hands out per-visitor providers sharing one user directory.
type Service interface {
	NewProvider() Provider
}
