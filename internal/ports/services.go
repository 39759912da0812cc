package ports

import (
	"context"

	"github.com/mdepalma/todolists/internal/domain/list"
	"github.com/mdepalma/todolists/internal/domain/todo"
)

// ListService defines the service port for list and todo operations.
// Implemented by the application layer; called by inbound adapters (handlers).
// The service validates titles before mutating, guards referenced entities
// with explicit existence checks, and orders results by completion status.
type ListService interface {
	// ListLists returns all lists with todos populated, sorted by
	// completion status (incomplete lists first, alphabetical within
	// each group).
	ListLists(ctx context.Context) ([]list.List, error)

	// GetList returns a single list by ID with its todos sorted by
	// completion status.
	// Returns domain.ErrNotFound if the list does not exist.
	GetList(ctx context.Context, id string) (*list.List, error)

	// CreateList validates the title against all existing lists and
	// creates a new empty list.
	// Returns domain.ErrValidation if the title fails validation.
	CreateList(ctx context.Context, title string) (*list.List, error)

	// RenameList validates the new title and updates the list.
	// Returns domain.ErrNotFound if the list does not exist and
	// domain.ErrValidation if the title fails validation.
	RenameList(ctx context.Context, id, title string) (*list.List, error)

	// DeleteList removes a list and all its todos.
	DeleteList(ctx context.Context, id string) error

	// AddTodo validates the todo title and appends it to the list.
	// Returns domain.ErrNotFound if the list does not exist and
	// domain.ErrValidation if the title fails validation.
	AddTodo(ctx context.Context, listID, title string) (*todo.Todo, error)

	// RemoveTodo deletes one todo.
	// Returns domain.ErrNotFound if the list or todo does not exist.
	RemoveTodo(ctx context.Context, listID, todoID string) error

	// SetTodoStatus sets a todo's completion flag and returns the
	// updated entity.
	// Returns domain.ErrNotFound if the list or todo does not exist.
	SetTodoStatus(ctx context.Context, listID, todoID string, completed bool) (*todo.Todo, error)

	// CompleteAll marks every todo in the list completed and returns the
	// updated list with todos sorted by completion status.
	// Returns domain.ErrNotFound if the list does not exist.
	CompleteAll(ctx context.Context, listID string) (*list.List, error)
}
