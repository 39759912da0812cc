package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mdepalma/todolists/internal/adapters/storage/session"
	"github.com/mdepalma/todolists/internal/app"
	"github.com/mdepalma/todolists/internal/ports"
)

// newTestService builds a ListService over a fresh in-memory store so handler
// tests exercise real validation and ordering behavior.
func newTestService(t *testing.T) ports.ListService {
	t.Helper()

	store := session.NewStore(session.NewState())
	provider := ports.StoreProviderFunc(func(_ context.Context) (ports.ListStore, error) {
		return store, nil
	})
	return app.NewListService(provider, slog.New(slog.DiscardHandler))
}

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
