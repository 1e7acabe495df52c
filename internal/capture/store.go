package capture

import (
	"sync"
	"time"

	appErrors "memorateller-backend/pkg/errors"
)

// Store holds active capture sessions in memory. Sessions expire after a
// TTL of inactivity; a background routine removes expired ones.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	ttl         time.Duration
	saveTimeout time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewStore creates a session store and starts its cleanup routine.
func NewStore(ttl, saveTimeout time.Duration) *Store {
	st := &Store{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		saveTimeout: saveTimeout,
		stopCh:      make(chan struct{}),
	}
	go st.cleanupRoutine()
	return st
}

// Create starts a new capture session for the given identity.
func (st *Store) Create(ownerID string) *Session {
	s := newSession(ownerID, st.saveTimeout)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID()] = s
	return s
}

// Get retrieves a session by ID for the given identity. A session never
// resolves for an identity other than its owner.
func (st *Store) Get(id, ownerID string) (*Session, error) {
	st.mu.RLock()
	s, exists := st.sessions[id]
	st.mu.RUnlock()

	if !exists || st.expired(s) {
		return nil, appErrors.NewNotFound("capture session not found")
	}
	if s.OwnerID() != ownerID {
		// Indistinguishable from absence to the caller.
		return nil, appErrors.NewNotFound("capture session not found")
	}
	return s, nil
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close stops the cleanup routine.
func (st *Store) Close() {
	st.stopOnce.Do(func() { close(st.stopCh) })
}

func (st *Store) expired(s *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.touchedAt) > st.ttl
}

// CleanupExpired removes sessions idle for longer than the TTL.
func (st *Store) CleanupExpired() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := time.Since(s.touchedAt)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
		}
	}
}

func (st *Store) cleanupRoutine() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-st.stopCh:
			return
		case <-ticker.C:
			st.CleanupExpired()
		}
	}
}
