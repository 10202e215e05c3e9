package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iudanet/shelfctl/internal/client/storage"
	"github.com/iudanet/shelfctl/pkg/api"
)

// State enumerates the session controller's states
type State int

const (
	// StateUnknown is the initial state before the first FetchUser;
	// callers should hold off rendering until it resolves
	StateUnknown State = iota

	// StateAuthenticated means a profile fetch succeeded; it does not
	// imply the stored access token is still fresh
	StateAuthenticated

	// StateAnonymous means no usable session exists
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// ProfileFetcher is the gateway call the session needs
type ProfileFetcher interface {
	Profile(ctx context.Context) (*api.User, error)
}

// Session is the process-wide authentication state: exactly one
// instance, mutated only through its own transition methods. The mutex
// serializes transitions so none can interleave mid-update.
type Session struct {
	tokens  storage.TokenStorage
	profile ProfileFetcher
	user    *api.User
	lastErr error
	state   State
	mu      sync.Mutex
}

// NewSession creates a session in the unknown state
func NewSession(tokens storage.TokenStorage, profile ProfileFetcher) *Session {
	return &Session{
		tokens:  tokens,
		profile: profile,
		state:   StateUnknown,
	}
}

// FetchUser resolves the session from stored tokens. Without a stored
// token it transitions straight to anonymous with no network call. With
// one it fetches the profile: success means authenticated, any failure
// means anonymous — the tokens stay in place so the gateway can attempt
// recovery on the next authenticated call instead of being cleared here.
func (s *Session) FetchUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.tokens.GetAuth(ctx); err != nil {
		if !errors.Is(err, storage.ErrAuthNotFound) {
			s.toAnonymous(err)
			return fmt.Errorf("failed to read stored tokens: %w", err)
		}
		s.toAnonymous(nil)
		return nil
	}

	user, err := s.profile.Profile(ctx)
	if err != nil {
		s.toAnonymous(err)
		return fmt.Errorf("failed to fetch user: %w", err)
	}

	s.state = StateAuthenticated
	s.user = user
	s.lastErr = nil
	return nil
}

// SetUser transitions directly to authenticated after login or
// registration, skipping a redundant profile fetch. A nil user
// transitions to anonymous.
func (s *Session) SetUser(user *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		s.toAnonymous(nil)
		return
	}
	s.state = StateAuthenticated
	s.user = user
	s.lastErr = nil
}

// Logout clears the stored tokens and transitions to anonymous
// regardless of the current state. Idempotent.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.tokens.DeleteAuth(ctx)
	s.toAnonymous(nil)

	if err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

// Expire transitions to anonymous without touching storage; the gateway
// has already cleared the tokens when its refresh attempt failed.
func (s *Session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toAnonymous(nil)
}

// State returns the current session state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the authenticated user, or nil
func (s *Session) CurrentUser() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a user is present. Holds the
// invariant isAuthenticated == (user != nil).
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated && s.user != nil
}

// Err returns the failure recorded by the last FetchUser, if any
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// toAnonymous выполняет переход в anonymous, вызывается под mutex
func (s *Session) toAnonymous(err error) {
	s.state = StateAnonymous
	s.user = nil
	s.lastErr = err
}
