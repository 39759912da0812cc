package session

import (
	"sync"
	"testing"
	"time"
)

func TestManagerCreateAndLookup(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Hour)
	token, state := m.Create()

	if token == "" {
		t.Fatal("Create() returned empty token")
	}
	if got := m.Lookup(token); got != state {
		t.Error("Lookup() did not return the created state")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestManagerLookupUnknownToken(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Hour)
	if got := m.Lookup("nope"); got != nil {
		t.Errorf("Lookup() = %v, want nil for unknown token", got)
	}
}

func TestManagerExpiry(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Millisecond)
	token, _ := m.Create()

	time.Sleep(5 * time.Millisecond)

	if got := m.Lookup(token); got != nil {
		t.Error("Lookup() returned state for expired session")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after lazy expiry, want 0", m.Len())
	}
}

func TestManagerRenew(t *testing.T) {
	t.Parallel()

	m := NewManager(50 * time.Millisecond)
	token, _ := m.Create()

	time.Sleep(30 * time.Millisecond)
	m.Renew(token)
	time.Sleep(30 * time.Millisecond)

	// Without the renewal the session would have expired by now.
	if got := m.Lookup(token); got == nil {
		t.Error("Lookup() = nil, renewal did not extend the session")
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, _ := m.Create()
			m.Lookup(token)
			m.Renew(token)
		}()
	}
	wg.Wait()

	if m.Len() != 20 {
		t.Errorf("Len() = %d, want 20", m.Len())
	}
}
