// Package session models authentication state as an explicit, injected
// object instead of ambient process-global state. A Session begins in
// Loading, subscribes to its provider's state-change notifications, and
// settles into Authenticated or Anonymous; consumers treat Loading as
// "not available yet" and Anonymous as "sign-in required".
package session

import (
	"context"
	"sync"

	appErrors "memorateller-backend/pkg/errors"
)

// Identity is the opaque reference to an authenticated subject.
type Identity struct {
	ID    string
	Email string
}

// State is the lifecycle state of a session.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Notifier delivers authentication state changes. Implementations invoke
// the callback with the current identity (nil for anonymous) once the
// provider has reported its first state, and again on every change. The
// returned function unsubscribes.
type Notifier interface {
	Subscribe(fn func(identity *Identity)) (unsubscribe func())
}

// Verifier resolves a bearer token to an identity via the authentication
// provider. Failures are AuthErrors, never swallowed.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Session tracks the provider's current session state for the lifetime of
// the application. Construct once at startup, Close at teardown.
type Session struct {
	mu          sync.RWMutex
	state       State
	identity    *Identity
	subscribers map[int]func(State, *Identity)
	nextSubID   int
	unsubscribe func()
	closed      bool
}

// New creates a session subscribed to the notifier. The session stays in
// Loading until the notifier reports its first state.
func New(notifier Notifier) *Session {
	s := &Session{
		state:       StateLoading,
		subscribers: make(map[int]func(State, *Identity)),
	}
	s.unsubscribe = notifier.Subscribe(s.onChange)
	return s
}

func (s *Session) onChange(identity *Identity) {
	s.mu.Lock()
	if s.closed {
		// Late notification after teardown; nothing to update.
		s.mu.Unlock()
		return
	}
	if identity != nil {
		s.state = StateAuthenticated
		copied := *identity
		s.identity = &copied
	} else {
		s.state = StateAnonymous
		s.identity = nil
	}
	state, id := s.state, s.identity
	subs := make([]func(State, *Identity), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state, id)
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns the current identity and whether one is present.
func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Require returns the identity or the error describing why identity-scoped
// operations cannot run yet.
func (s *Session) Require() (Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.state {
	case StateLoading:
		return Identity{}, appErrors.NewUnavailable("session is still loading")
	case StateAuthenticated:
		if s.identity != nil {
			return *s.identity, nil
		}
		fallthrough
	default:
		return Identity{}, appErrors.NewUnauthorized("sign-in required")
	}
}

// Subscribe registers a callback invoked on every state change. The
// returned function removes the subscription.
func (s *Session) Subscribe(fn func(State, *Identity)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Close unsubscribes from the provider and drops all subscribers.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.subscribers = make(map[int]func(State, *Identity))
	unsub := s.unsubscribe
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
