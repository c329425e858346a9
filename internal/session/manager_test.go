package session

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shophub/internal/auth"
	"github.com/example/shophub/internal/catalog"
	"github.com/example/shophub/internal/identity"
	"github.com/example/shophub/internal/payment"
	"github.com/example/shophub/internal/store"
)

func newTestManager(t *testing.T) (*Manager, store.Local) {
	t.Helper()
	flags := store.NewMemoryStore()
	m := NewManager(identity.NewLocalService(), flags)
	t.Cleanup(m.Close)
	return m, flags
}

func TestManager_GetOrCreate_MintsID(t *testing.T) {
	m, _ := newTestManager(t)

	s := m.GetOrCreate("")

	assert.NotEmpty(t, s.ID)
	assert.NotNil(t, s.Cart)
	assert.NotNil(t, s.Gate)
}

func TestManager_GetOrCreate_ReturnsSameSession(t *testing.T) {
	m, _ := newTestManager(t)

	first := m.GetOrCreate("visitor-1")
	second := m.GetOrCreate("visitor-1")

	assert.Same(t, first, second)
}

func TestManager_GetOrCreate_EmptyIDsAreDistinct(t *testing.T) {
	m, _ := newTestManager(t)

	first := m.GetOrCreate("")
	second := m.GetOrCreate("")

	assert.NotEqual(t, first.ID, second.ID)
}

func TestManager_GuestFlagSurvivesRestart(t *testing.T) {
	flags := store.NewMemoryStore()
	idp := identity.NewLocalService()

	m := NewManager(idp, flags)
	s := m.GetOrCreate("visitor-1")
	s.Gate.ContinueAsGuest()
	require.Equal(t, auth.Guest, s.Gate.State())
	s.Cart.Add(catalog.Product{ID: "p1", Price: decimal.RequireFromString("10.00"), Stock: 5})
	m.Close()

	// A new manager over the same flag store stands in for a restart: the
	// cart is gone, the guest choice is not.
	m = NewManager(idp, flags)
	defer m.Close()
	s = m.GetOrCreate("visitor-1")

	assert.Equal(t, auth.Guest, s.Gate.State())
	assert.Zero(t, s.Cart.ItemsCount())
}

func TestSession_BeginCheckout_ClosesPreviousFlow(t *testing.T) {
	m, _ := newTestManager(t)
	s := m.GetOrCreate("visitor-1")
	sim := payment.NewSimulator()

	first := s.BeginCheckout(sim, nil)
	second := s.BeginCheckout(sim, nil)

	assert.NotSame(t, first, second)
}

func TestSession_EndCheckout(t *testing.T) {
	m, _ := newTestManager(t)
	s := m.GetOrCreate("visitor-1")

	s.BeginCheckout(payment.NewSimulator(), nil)
	s.EndCheckout()
	s.EndCheckout() // idempotent
}
