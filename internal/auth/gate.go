// Package auth mediates access to protected destinations. The gate
// reconciles asynchronous identity-provider session notifications with a
// locally persisted guest flag.
package auth

import (
	"context"
	"log"
	"sync"

	"github.com/example/shophub/internal/identity"
	"github.com/example/shophub/internal/store"
)

// State is the gate's identity state. Exactly one holds at any time.
type State int

const (
	Loading State = iota
	Unauthenticated
	Guest
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case Guest:
		return "guest"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Access is the routing decision for a protected destination.
type Access int

const (
	AccessGranted Access = iota
	AccessPending
	AccessDenied
)

const guestFlagValue = "true"

// Gate tracks one visitor's identity state. It starts Loading and resolves
// to a terminal state exactly once: either the provider's session callback
// fires first, or a persisted guest flag found synchronously resolves it
// early to Guest. Later redundant callbacks converge to the same state.
type Gate struct {
	provider identity.Provider
	flags    store.Local
	flagKey  string

	mu      sync.Mutex
	state   State
	profile *identity.Profile
	closed  bool
	unsub   func()
}

// NewGate builds a gate for one session. flagKey names the persisted guest
// flag in flags.
func NewGate(provider identity.Provider, flags store.Local, flagKey string) *Gate {
	g := &Gate{
		provider: provider,
		flags:    flags,
		flagKey:  flagKey,
		state:    Loading,
	}
	if g.guestFlag() {
		g.state = Guest
	}
	g.unsub = provider.Subscribe(g.onSessionChange)
	return g
}

// onSessionChange handles provider notifications. A live session always wins
// over guest mode; with no session the persisted flag decides between Guest
// and Unauthenticated. Notifications arriving after Close are ignored.
func (g *Gate) onSessionChange(profile *identity.Profile) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}

	if profile != nil {
		g.profile = profile
		g.state = Authenticated
		g.clearGuestFlagLocked()
		return
	}

	g.profile = nil
	if g.guestFlag() {
		g.state = Guest
	} else {
		g.state = Unauthenticated
	}
}

// SignIn invokes the provider's interactive sign-in. On success the guest
// flag is cleared and the gate becomes Authenticated; on failure the state
// is left unchanged and the error is returned to the caller. One attempt per
// call, no retries.
func (g *Gate) SignIn(ctx context.Context, email, password string) (*identity.Profile, error) {
	profile, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return profile, nil
	}
	g.profile = profile
	g.state = Authenticated
	g.clearGuestFlagLocked()
	return profile, nil
}

// ContinueAsGuest persists the guest flag and moves the gate to Guest. An
// authenticated session is not downgraded.
func (g *Gate) ContinueAsGuest() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || g.state == Authenticated {
		return
	}
	if err := g.flags.Set(g.flagKey, guestFlagValue); err != nil {
		log.Printf("[Gate] failed to persist guest flag: %v", err)
	}
	g.state = Guest
}

// SignOut invokes the provider's sign-out. On success local user state and
// the guest flag are cleared; on failure the state is left unchanged and the
// error is returned.
func (g *Gate) SignOut(ctx context.Context) error {
	if err := g.provider.SignOut(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.profile = nil
	g.clearGuestFlagLocked()
	g.state = Unauthenticated
	return nil
}

// State returns the current identity state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Profile returns the authenticated profile, or nil.
func (g *Gate) Profile() *identity.Profile {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.profile == nil {
		return nil
	}
	p := *g.profile
	return &p
}

// Allow decides access to a protected destination: granted for Authenticated
// and Guest, pending while Loading, denied otherwise.
func (g *Gate) Allow() Access {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case Authenticated, Guest:
		return AccessGranted
	case Loading:
		return AccessPending
	default:
		return AccessDenied
	}
}

// Close detaches the gate from the provider. In-flight provider callbacks
// resolving after Close no longer update state.
func (g *Gate) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	unsub := g.unsub
	g.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (g *Gate) guestFlag() bool {
	value, ok, err := g.flags.Get(g.flagKey)
	if err != nil {
		log.Printf("[Gate] failed to read guest flag: %v", err)
		return false
	}
	return ok && value == guestFlagValue
}

func (g *Gate) clearGuestFlagLocked() {
	if err := g.flags.Delete(g.flagKey); err != nil {
		log.Printf("[Gate] failed to clear guest flag: %v", err)
	}
}
