// Package session ties one visitor to their cart and auth gate.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/shophub/internal/auth"
	"github.com/example/shophub/internal/cart"
	"github.com/example/shophub/internal/checkout"
	"github.com/example/shophub/internal/identity"
	"github.com/example/shophub/internal/payment"
	"github.com/example/shophub/internal/store"
)

// Session owns the per-visitor state: the cart (process memory only) and the
// auth gate (guest flag persisted durably under the session's flag key).
type Session struct {
	ID        string
	Cart      *cart.Store
	Gate      *auth.Gate
	CreatedAt time.Time

	mu   sync.Mutex
	flow *checkout.Flow
}

// BeginCheckout starts a fresh checkout flow, closing any previous one so a
// stale flow cannot fire its redirect later.
func (s *Session) BeginCheckout(payments payment.Provider, redirect func()) *checkout.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flow != nil {
		s.flow.Close()
	}
	s.flow = checkout.NewFlow(s.Cart, payments, redirect)
	return s.flow
}

// EndCheckout disposes the current flow, if any.
func (s *Session) EndCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flow != nil {
		s.flow.Close()
		s.flow = nil
	}
}

// Close tears down the session's gate and checkout flow.
func (s *Session) Close() {
	s.EndCheckout()
	s.Gate.Close()
}

// Manager hands out sessions keyed by ID. Sessions themselves live in
// process memory; after a restart GetOrCreate rebuilds a session under the
// same ID with an empty cart, and its gate picks the persisted guest flag
// back up.
type Manager struct {
	idp   identity.Service
	flags store.Local

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(idp identity.Service, flags store.Local) *Manager {
	return &Manager{
		idp:      idp,
		flags:    flags,
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for id, creating it (and minting a new ID
// when id is empty) if unknown.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s
		}
	} else {
		id = uuid.New().String()
	}

	s := &Session{
		ID:        id,
		Cart:      cart.NewStore(),
		Gate:      auth.NewGate(m.idp.NewProvider(), m.flags, guestFlagKey(id)),
		CreatedAt: time.Now(),
	}
	m.sessions[id] = s
	return s
}

// Close tears down every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func guestFlagKey(sessionID string) string {
	return "guest_mode/" + sessionID
}
