package session

// store.go keeps active sessions in memory. Nothing is persisted: when a
// session expires or the process exits, the uploaded rows are gone, which
// is the product's data-retention posture.

import (
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// DefaultTTL is how long an idle session survives before eviction.
const DefaultTTL = 2 * time.Hour

// Store is a mutex-guarded session registry with TTL eviction.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// NewStore creates a store with the given TTL (DefaultTTL when zero).
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Put registers a session.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = &entry{session: s, lastSeen: st.now()}
}

// Get returns the session for an ID, refreshing its TTL.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if st.now().Sub(e.lastSeen) > st.ttl {
		delete(st.sessions, id)
		return nil, ErrSessionNotFound
	}
	e.lastSeen = st.now()
	return e.session, nil
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

// Sweep evicts expired sessions and returns the eviction count. The
// server runs this on a ticker.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0
	cutoff := st.now().Add(-st.ttl)
	for id, e := range st.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}
