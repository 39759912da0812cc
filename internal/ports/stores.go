package ports

import (
	"context"

	"github.com/mdepalma/todolists/internal/domain/list"
	"github.com/mdepalma/todolists/internal/domain/todo"
)

// ListStore defines the storage contract shared by the relational (sqlite)
// and session backends. Both implementations must produce identical
// externally observable behavior for every operation given equivalent
// inputs; only ID assignment is backend-specific.
//
// Title validation (length, uniqueness) is the caller's responsibility.
// The store trusts its inputs and never re-validates.
type ListStore interface {
	// AllLists returns every list with its todos populated.
	AllLists(ctx context.Context) ([]list.List, error)

	// FindList returns a single list by ID with its todos populated.
	// Returns domain.ErrNotFound if the list does not exist.
	FindList(ctx context.Context, id string) (*list.List, error)

	// CreateList inserts a new list with an empty todo collection and
	// returns the created entity with its store-assigned ID.
	CreateList(ctx context.Context, title string) (*list.List, error)

	// UpdateListTitle sets a list's title. A no-op if the ID is absent.
	UpdateListTitle(ctx context.Context, id, title string) error

	// DeleteList removes a list and all todos it owns.
	DeleteList(ctx context.Context, id string) error

	// CreateTodo appends a todo to the named list and returns the created
	// entity with its store-assigned ID.
	// Returns domain.ErrNotFound if the list does not exist.
	CreateTodo(ctx context.Context, listID, title string) (*todo.Todo, error)

	// DeleteTodo removes one todo from a list.
	DeleteTodo(ctx context.Context, listID, todoID string) error

	// UpdateTodoStatus sets a todo's completion flag.
	UpdateTodoStatus(ctx context.Context, listID, todoID string, completed bool) error

	// MarkAllTodosCompleted sets the completion flag true for every todo
	// in the list.
	MarkAllTodosCompleted(ctx context.Context, listID string) error
}

// StoreProvider resolves the ListStore for the current request. The sqlite
// provider always returns the shared store; the session provider returns a
// store bound to the session state the session middleware placed in ctx.
type StoreProvider interface {
	StoreFor(ctx context.Context) (ListStore, error)
}

// StoreProviderFunc adapts a function to the StoreProvider interface.
type StoreProviderFunc func(ctx context.Context) (ListStore, error)

// StoreFor calls f.
func (f StoreProviderFunc) StoreFor(ctx context.Context) (ListStore, error) {
	return f(ctx)
}
