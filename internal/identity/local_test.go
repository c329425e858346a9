package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *LocalService {
	t.Helper()
	svc := NewLocalService()
	require.NoError(t, svc.AddUser("alice@example.com", "Alice", "password123"))
	return svc
}

// waitForProfile blocks until the channel delivers or the test times out.
func waitForProfile(t *testing.T, ch <-chan *Profile) *Profile {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session notification")
		return nil
	}
}

// ============================================
// Credentials
// ============================================

func TestLocalProvider_SignIn(t *testing.T) {
	svc := newTestService(t)
	provider := svc.NewProvider()

	profile, err := provider.SignIn(context.Background(), "alice@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "Alice", profile.Name)
	assert.NotEmpty(t, profile.ID)
}

func TestLocalProvider_SignIn_EmailIsCaseInsensitive(t *testing.T) {
	svc := newTestService(t)
	provider := svc.NewProvider()

	profile, err := provider.SignIn(context.Background(), "ALICE@Example.COM", "password123")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
}

func TestLocalProvider_SignIn_InvalidCredentials(t *testing.T) {
	svc := newTestService(t)
	provider := svc.NewProvider()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "wrong-password"},
		{"unknown user", "bob@example.com", "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.SignIn(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLocalProvider_SignIn_CancelledContext(t *testing.T) {
	svc := newTestService(t)
	provider := svc.NewProvider()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.SignIn(ctx, "alice@example.com", "password123")
	assert.ErrorIs(t, err, context.Canceled)
}

// ============================================
// Session notifications
// ============================================

func TestLocalProvider_Subscribe_DeliversCurrentSession(t *testing.T) {
	svc := newTestService(t)
	provider := svc.NewProvider()

	ch := make(chan *Profile, 1)
	unsub := provider.Subscribe(func(p *Profile) { ch <- p })
	defer unsub()

	// The initial delivery reports no session.
	assert.Nil(t, waitForProfile(t, ch))
}

func TestLocalProvider_Subscribe_AfterSignIn(t *testing.T) {
	svc := newTestService(t)
	provider := svc.NewProvider()

	_, err := provider.SignIn(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	ch := make(chan *Profile, 1)
	unsub := provider.Subscribe(func(p *Profile) { ch <- p })
	defer unsub()

	profile := waitForProfile(t, ch)
	require.NotNil(t, profile)
	assert.Equal(t, "alice@example.com", profile.Email)
}

func TestLocalProvider_SignInAndOut_NotifiesInOrder(t *testing.T) {
	svc := newTestService(t)
	provider := svc.NewProvider()

	ch := make(chan *Profile, 4)
	unsub := provider.Subscribe(func(p *Profile) { ch <- p })
	defer unsub()

	require.Nil(t, waitForProfile(t, ch)) // initial delivery

	_, err := provider.SignIn(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, waitForProfile(t, ch))

	require.NoError(t, provider.SignOut(context.Background()))
	assert.Nil(t, waitForProfile(t, ch))
}

func TestLocalProvider_Unsubscribe_StopsDeliveries(t *testing.T) {
	svc := newTestService(t)
	provider := svc.NewProvider()

	ch := make(chan *Profile, 4)
	unsub := provider.Subscribe(func(p *Profile) { ch <- p })
	waitForProfile(t, ch)

	unsub()

	_, err := provider.SignIn(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	select {
	case p := <-ch:
		t.Fatalf("unexpected delivery after unsubscribe: %+v", p)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLocalService_ProvidersAreIndependent(t *testing.T) {
	svc := newTestService(t)
	first := svc.NewProvider()
	second := svc.NewProvider()

	_, err := first.SignIn(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	// The second visitor's session is untouched.
	ch := make(chan *Profile, 1)
	unsub := second.Subscribe(func(p *Profile) { ch <- p })
	defer unsub()

	assert.Nil(t, waitForProfile(t, ch))
}
