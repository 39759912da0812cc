package middleware

import (
	"net/http"

	"github.com/mdepalma/todolists/internal/adapters/storage/session"
)

// Session returns middleware that binds each request to a session state.
// An incoming cookie with a live token reuses its state; otherwise a fresh
// session is created and its token set as an HttpOnly cookie. The state is
// stored in the request context for the session store provider to pick up.
//
// After the handler runs, a dirty state renews the session's expiry and the
// dirty flag is cleared, so only mutating requests extend the session.
//
// Only installed when the session storage backend is selected; the sqlite
// backend needs no per-request state.
func Session(manager *session.Manager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			var state *session.State

			if c, err := r.Cookie(cookieName); err == nil {
				token = c.Value
				state = manager.Lookup(token)
			}
			if state == nil {
				token, state = manager.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := session.WithState(r.Context(), state)
			next.ServeHTTP(w, r.WithContext(ctx))

			if state.Dirty() {
				manager.Renew(token)
				state.ClearDirty()
			}
		})
	}
}
