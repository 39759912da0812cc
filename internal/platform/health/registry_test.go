package health

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                        { return s.name }
func (s stubChecker) HealthCheck(_ context.Context) error { return s.err }

func TestRegistryCheckAll(t *testing.T) {
	t.Parallel()

	reg := New()
	reg.Register(stubChecker{name: "sqlite"})
	reg.Register(stubChecker{name: "session", err: errors.New("session manager stopped")})

	results := reg.CheckAll(context.Background())

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if err := results["sqlite"]; err != nil {
		t.Errorf("sqlite check = %v, want nil", err)
	}
	if err := results["session"]; err == nil {
		t.Error("session check = nil, want error")
	}
}

func TestRegistryCheckAllEmpty(t *testing.T) {
	t.Parallel()

	reg := New()
	results := reg.CheckAll(context.Background())
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestRegistryConcurrentRegister(t *testing.T) {
	t.Parallel()

	reg := New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Register(stubChecker{name: "sqlite"})
			reg.CheckAll(context.Background())
		}()
	}
	wg.Wait()

	if got := len(reg.CheckAll(context.Background())); got != 1 {
		// All checkers share the name "sqlite" so the map collapses to one key.
		t.Errorf("got %d distinct results, want 1", got)
	}
}
