package handlers

import (
	"sync"
	"time"

	"microgrid-env/internal/env"
)

// Session is one interactive environment owned by the API. The mutex
// serializes Reset/Step/Observe: the environment itself is
// single-threaded by contract.
type Session struct {
	ID        string
	Env       *env.Environment
	Mode      string
	CreatedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

// Do runs fn while holding the session lock and refreshes the idle
// timer.
func (s *Session) Do(fn func(*env.Environment) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return fn(s.Env)
}

// SessionStore is an in-memory session registry with idle expiry.
type SessionStore struct {
	mu    sync.RWMutex
	store map[string]*Session
	ttl   time.Duration
}

// NewSessionStore creates a store whose sessions expire after ttl of
// inactivity. The sweep goroutine runs for the process lifetime.
func NewSessionStore(ttl time.Duration) *SessionStore {
	st := &SessionStore{
		store: make(map[string]*Session),
		ttl:   ttl,
	}
	go st.sweep()
	return st
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.store[id]
	return s, ok
}

func (st *SessionStore) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s.lastUsed = time.Now()
	st.store[s.ID] = s
}

func (st *SessionStore) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.store[id]
	delete(st.store, id)
	return ok
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.store)
}

// sweep periodically drops sessions idle past the TTL.
func (st *SessionStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-st.ttl)
		st.mu.Lock()
		for id, s := range st.store {
			s.mu.Lock()
			idle := s.lastUsed.Before(cutoff)
			s.mu.Unlock()
			if idle {
				delete(st.store, id)
			}
		}
		st.mu.Unlock()
	}
}
