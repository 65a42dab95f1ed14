// Package session holds the authenticated identity, makes it durable
// across process restarts and exposes it as an observable service.
// Every component that needs to know who is logged in reads through a
// *Store rather than touching durable storage directly.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// ErrInvalidCredentials is returned by Login when the server rejects
// the credential pair without giving a reason of its own.
var ErrInvalidCredentials = errors.New("invalid credentials")

// State is the session lifecycle state.
type State int

const (
	// StateUninitialized means Restore has not been called yet.
	StateUninitialized State = iota
	// StateLoading means Restore is reading durable storage. Route
	// guards must not redirect while in this state.
	StateLoading
	// StateAuthenticated means a valid session is active.
	StateAuthenticated
	// StateAnonymous means no session is active.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Authenticator exchanges credentials for a session. The resources
// layer implements it against the backend's login endpoint.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (models.Session, error)
}

// Store is the session service. It owns the in-memory session value,
// keeps it in lockstep with durable storage and notifies subscribers
// on every change.
type Store struct {
	storage Storage
	auth    Authenticator

	mu      sync.RWMutex
	state   State
	session models.Session
	subs    []func()
}

// NewStore creates a session store over the given durable storage and
// authenticator. The store starts uninitialized; call Restore before
// rendering anything that depends on identity.
func NewStore(storage Storage, auth Authenticator) *Store {
	return &Store{storage: storage, auth: auth, state: StateUninitialized}
}

// SetAuthenticator installs the authenticator after construction. The
// store supplies tokens to the gateway the resources layer is built
// on, so the two are wired in this order at startup.
func (s *Store) SetAuthenticator(auth Authenticator) {
	s.auth = auth
}

// Restore reads the persisted session. Partial, malformed or
// unrecognized persisted state yields an anonymous session and purges
// whatever was on disk.
func (s *Store) Restore() {
	s.set(StateLoading, models.Session{})

	sess, found, err := s.storage.Load()
	if err != nil || (found && !sess.Valid()) {
		// Corrupt or partial state is worse than none.
		_ = s.storage.Clear()
		s.set(StateAnonymous, models.Session{})
		return
	}
	if !found {
		s.set(StateAnonymous, models.Session{})
		return
	}
	sess.Role = models.NormalizeRole(string(sess.Role))
	s.set(StateAuthenticated, sess)
}

// Login exchanges the credentials and, on success, atomically installs
// the new session in memory and durable storage. On failure the prior
// session is left untouched. Concurrent logins are not coordinated;
// the last completion wins.
func (s *Store) Login(ctx context.Context, username, password string) error {
	sess, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	sess.Role = models.NormalizeRole(string(sess.Role))
	if !sess.Valid() {
		return ErrInvalidCredentials
	}
	if err := s.storage.Save(sess); err != nil {
		return err
	}
	s.set(StateAuthenticated, sess)
	return nil
}

// Logout clears both the in-memory and the durable session. Idempotent.
func (s *Store) Logout() {
	_ = s.storage.Clear()
	s.set(StateAnonymous, models.Session{})
}

// Purge is the gateway's entry point when the server reports an
// authentication failure. Identical to Logout.
func (s *Store) Purge() { s.Logout() }

// Current returns the session value and lifecycle state.
func (s *Store) Current() (models.Session, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.state
}

// AccessToken returns the current access token, or "" when anonymous.
// Satisfies the gateway's token source.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Tokens.AccessToken
}

// IsAuthenticated reports whether a valid session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateAuthenticated && s.session.Valid()
}

// IsSuperAdmin reports an exact super-admin role match.
func (s *Store) IsSuperAdmin() bool { return s.role() == models.RoleSuperAdmin }

// IsManager reports an exact manager role match.
func (s *Store) IsManager() bool { return s.role() == models.RoleManager }

func (s *Store) role() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return ""
	}
	return s.session.Role
}

// OnChange registers a callback invoked after every state or session
// change. Callbacks run outside the store's lock.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) set(state State, sess models.Session) {
	s.mu.Lock()
	s.state = state
	s.session = sess
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
