// Package session provides the ephemeral storage backend. Lists live in a
// per-user State held for the duration of a browsing session; nothing
// survives session expiry. IDs are random hex tokens.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/mdepalma/todolists/internal/domain/list"
)

// State holds one user's lists for the lifetime of a browsing session.
// A State is only touched by its own user's requests, so it carries no
// locking; the Manager serializes access to the token map instead.
//
// Every mutation sets the dirty flag so the hosting layer knows the state
// must be re-persisted (the session middleware renews the session cookie
// and expiry after a dirty request).
type State struct {
	lists []list.List
	dirty bool
}

// NewState creates an empty session state.
func NewState() *State {
	return &State{}
}

// Dirty reports whether the state has been mutated since the last ClearDirty.
func (s *State) Dirty() bool {
	return s.dirty
}

// ClearDirty resets the dirty flag after the hosting layer has persisted
// the state.
func (s *State) ClearDirty() {
	s.dirty = false
}

func (s *State) markDirty() {
	s.dirty = true
}

// stateKey is the unexported context key for the per-request session state.
type stateKey struct{}

// WithState returns a new context carrying the given session state.
// The session middleware calls this before invoking the handler chain.
func WithState(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, stateKey{}, state)
}

// StateFromContext extracts the session state from the context.
// Returns nil if no state is stored.
func StateFromContext(ctx context.Context) *State {
	if state, ok := ctx.Value(stateKey{}).(*State); ok {
		return state
	}
	return nil
}

// newID generates a random 16-byte hex token. Collision probability across
// a session's handful of entities is negligible.
func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
