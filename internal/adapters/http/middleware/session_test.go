package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mdepalma/todolists/internal/adapters/http/middleware"
	"github.com/mdepalma/todolists/internal/adapters/storage/session"
)

const testCookieName = "todo_session"

func TestSession_SetsNewCookie(t *testing.T) {
	t.Parallel()

	manager := session.NewManager(time.Hour)
	handler := middleware.Session(manager, testCookieName)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session.StateFromContext(r.Context()) == nil {
				t.Error("no session state in request context")
			}
			w.WriteHeader(http.StatusOK)
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != testCookieName {
		t.Errorf("cookie name = %q, want %q", c.Name, testCookieName)
	}
	if c.Value == "" {
		t.Error("cookie value is empty")
	}
	if !c.HttpOnly {
		t.Error("cookie not HttpOnly")
	}
	if manager.Len() != 1 {
		t.Errorf("manager.Len() = %d, want 1", manager.Len())
	}
}

func TestSession_ReusesExistingSession(t *testing.T) {
	t.Parallel()

	manager := session.NewManager(time.Hour)
	token, state := manager.Create()

	var got *session.State
	handler := middleware.Session(manager, testCookieName)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = session.StateFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got != state {
		t.Error("handler did not receive the existing session state")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie re-set for an existing session")
	}
	if manager.Len() != 1 {
		t.Errorf("manager.Len() = %d, want 1", manager.Len())
	}
}

func TestSession_UnknownTokenGetsFreshSession(t *testing.T) {
	t.Parallel()

	manager := session.NewManager(time.Hour)
	handler := middleware.Session(manager, testCookieName)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "expired-or-bogus"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1 replacement cookie", len(cookies))
	}
	if cookies[0].Value == "expired-or-bogus" {
		t.Error("stale token reissued instead of replaced")
	}
}

func TestSession_DirtyStateClearedAfterRequest(t *testing.T) {
	t.Parallel()

	manager := session.NewManager(time.Hour)
	token, state := manager.Create()

	handler := middleware.Session(manager, testCookieName)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := session.StateFromContext(r.Context())
			store := session.NewStore(st)
			if _, err := store.CreateList(r.Context(), "Groceries"); err != nil {
				t.Errorf("CreateList() error = %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if state.Dirty() {
		t.Error("state still dirty after request completed")
	}
}
