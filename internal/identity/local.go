package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// LocalService is an in-process identity backend with a bcrypt-hashed user
// directory. It exists so the storefront works without an external provider;
// anything implementing Service can be swapped in.
type LocalService struct {
	mu    sync.RWMutex
	users map[string]localUser // keyed by lowercased email
}

type localUser struct {
	id           string
	email        string
	name         string
	passwordHash string
}

func NewLocalService() *LocalService {
	return &LocalService{
		users: make(map[string]localUser),
	}
}

// AddUser registers a user with the given credentials.
func (s *LocalService) AddUser(email, name, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(email)] = localUser{
		id:           uuid.New().String(),
		email:        email,
		name:         name,
		passwordHash: hash,
	}
	return nil
}

func (s *LocalService) lookup(email, password string) (*Profile, error) {
	s.mu.RLock()
	u, ok := s.users[strings.ToLower(email)]
	s.mu.RUnlock()

	if !ok || !CheckPassword(password, u.passwordHash) {
		return nil, ErrInvalidCredentials
	}
	return &Profile{ID: u.id, Email: u.email, Name: u.name}, nil
}

// NewProvider returns a session-scoped provider backed by this directory.
func (s *LocalService) NewProvider() Provider {
	return &localProvider{
		svc:  s,
		subs: make(map[int]func(*Profile)),
	}
}

// localProvider tracks one visitor's session and fans session changes out to
// subscribers. notifyMu keeps deliveries in emission order; the initial
// delivery after Subscribe is asynchronous, mirroring provider SDKs that
// fire the callback with the current session after registration.
type localProvider struct {
	svc *LocalService

	mu      sync.Mutex
	current *Profile
	subs    map[int]func(*Profile)
	nextSub int

	notifyMu sync.Mutex
}

func (p *localProvider) SignIn(ctx context.Context, email, password string) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile, err := p.svc.lookup(email, password)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.current = profile
	p.mu.Unlock()

	p.notify(profile)
	return profile, nil
}

func (p *localProvider) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	p.notify(nil)
	return nil
}

func (p *localProvider) Subscribe(fn func(*Profile)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	go func() {
		p.notifyMu.Lock()
		defer p.notifyMu.Unlock()

		p.mu.Lock()
		current := p.current
		_, alive := p.subs[id]
		p.mu.Unlock()

		if alive {
			fn(current)
		}
	}()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *localProvider) notify(profile *Profile) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	fns := make([]func(*Profile), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(profile)
	}
}
