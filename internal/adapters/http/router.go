// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mdepalma/todolists/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	listHandler *handlers.ListHandler,
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// List CRUD.
		r.Get("/lists", listHandler.ListLists)
		r.Post("/lists", listHandler.CreateList)
		r.Get("/lists/{listId}", listHandler.GetList)
		r.Patch("/lists/{listId}", listHandler.RenameList)
		r.Delete("/lists/{listId}", listHandler.DeleteList)

		// Nested todo operations.
		r.Post("/lists/{listId}/todos", todoHandler.AddTodo)
		r.Post("/lists/{listId}/todos/complete_all", todoHandler.CompleteAll)
		r.Patch("/lists/{listId}/todos/{todoId}", todoHandler.UpdateTodo)
		r.Delete("/lists/{listId}/todos/{todoId}", todoHandler.RemoveTodo)
	})

	return r
}
