package session

import (
	"sync"
	"time"
)

// Manager is a thread-safe in-memory registry of session states keyed by
// opaque cookie tokens. Different users' requests race on the token map,
// never on a State, so only the map is guarded.
//
// Expired entries are dropped lazily on lookup; there is no background
// sweeper.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
}

type entry struct {
	state     *State
	expiresAt time.Time
}

// NewManager creates an empty session manager. Sessions expire ttl after
// their last renewal.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
}

// Lookup returns the state for a token, or nil if the token is unknown
// or the session has expired.
func (m *Manager) Lookup(token string) *State {
	m.mu.RLock()
	e, ok := m.entries[token]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, token)
		m.mu.Unlock()
		return nil
	}
	return e.state
}

// Create registers a fresh empty state and returns its token.
func (m *Manager) Create() (string, *State) {
	token := newID()
	state := NewState()
	m.mu.Lock()
	m.entries[token] = &entry{
		state:     state,
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
	return token, state
}

// Renew extends a session's expiry. Called after a request that mutated
// the state, standing in for the re-send step of a cookie-carried session.
func (m *Manager) Renew(token string) {
	m.mu.Lock()
	if e, ok := m.entries[token]; ok {
		e.expiresAt = time.Now().Add(m.ttl)
	}
	m.mu.Unlock()
}

// Len returns the number of live sessions. Used by tests and health output.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
