// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and storage through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mdepalma/todolists/internal/domain"
	"github.com/mdepalma/todolists/internal/domain/list"
	"github.com/mdepalma/todolists/internal/domain/todo"
	"github.com/mdepalma/todolists/internal/ports"
)

// Compile-time check that ListService implements ports.ListService.
var _ ports.ListService = (*ListService)(nil)

// ListService implements ports.ListService by orchestrating calls to the
// storage backend through the ListStore port. It handles title validation,
// existence guards, ordering, and structured logging; persistence details
// stay behind the store.
type ListService struct {
	stores ports.StoreProvider
	logger *slog.Logger
}

// NewListService creates a ListService. The provider resolves the store for
// each request, which lets the session backend bind a per-request store while
// the sqlite backend shares one. The logger is used for structured
// request/error logging.
func NewListService(stores ports.StoreProvider, logger *slog.Logger) *ListService {
	return &ListService{
		stores: stores,
		logger: logger,
	}
}

// ListLists returns all lists sorted by completion status: incomplete lists
// first, alphabetically within each group. Todos within each list are sorted
// the same way.
func (s *ListService) ListLists(ctx context.Context) ([]list.List, error) {
	s.logger.InfoContext(ctx, "listing todo lists")

	store, err := s.stores.StoreFor(ctx)
	if err != nil {
		return nil, err
	}

	lists, err := store.AllLists(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list todo lists",
			slog.String("operation", "ListLists"),
			slog.Any("error", err),
		)
		return nil, err
	}

	sorted := domain.SortByCompletion(lists,
		func(l list.List) string { return l.Title },
		func(l list.List) bool { return l.Completed() },
	)
	for i := range sorted {
		sorted[i].Todos = sortTodos(sorted[i].Todos)
	}
	return sorted, nil
}

// GetList returns a single list by ID with its todos sorted by completion
// status.
func (s *ListService) GetList(ctx context.Context, id string) (*list.List, error) {
	s.logger.InfoContext(ctx, "fetching todo list", slog.String("list_id", id))

	store, err := s.stores.StoreFor(ctx)
	if err != nil {
		return nil, err
	}

	l, err := store.FindList(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch todo list",
			slog.String("operation", "GetList"),
			slog.String("list_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	l.Todos = sortTodos(l.Todos)
	return l, nil
}

// CreateList validates the title against all existing lists and creates a new
// empty list.
func (s *ListService) CreateList(ctx context.Context, title string) (*list.List, error) {
	s.logger.InfoContext(ctx, "creating todo list", slog.String("title", title))

	store, err := s.stores.StoreFor(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := store.AllLists(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load lists for validation",
			slog.String("operation", "CreateList"),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := list.ValidateTitle(title, existing); err != nil {
		return nil, err
	}

	created, err := store.CreateList(ctx, title)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create todo list",
			slog.String("operation", "CreateList"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// RenameList validates the new title and updates the list. A list may keep
// its current title: validation excludes the list being renamed from the
// uniqueness check.
func (s *ListService) RenameList(ctx context.Context, id, title string) (*list.List, error) {
	s.logger.InfoContext(ctx, "renaming todo list", slog.String("list_id", id))

	store, err := s.stores.StoreFor(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := store.FindList(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to verify todo list",
			slog.String("operation", "RenameList"),
			slog.String("list_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	all, err := store.AllLists(ctx)
	if err != nil {
		return nil, err
	}
	others := make([]list.List, 0, len(all))
	for _, l := range all {
		if l.ID != id {
			others = append(others, l)
		}
	}

	if err := list.ValidateTitle(title, others); err != nil {
		return nil, err
	}

	if err := store.UpdateListTitle(ctx, id, title); err != nil {
		s.logger.ErrorContext(ctx, "failed to rename todo list",
			slog.String("operation", "RenameList"),
			slog.String("list_id", id),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("renaming list: %w", err)
	}

	updated, err := store.FindList(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.Todos = sortTodos(updated.Todos)
	return updated, nil
}

// DeleteList removes a list and all its todos. Deleting a list that does not
// exist returns domain.ErrNotFound so callers can distinguish the miss.
func (s *ListService) DeleteList(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "deleting todo list", slog.String("list_id", id))

	store, err := s.stores.StoreFor(ctx)
	if err != nil {
		return err
	}

	if _, err := store.FindList(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to verify todo list",
			slog.String("operation", "DeleteList"),
			slog.String("list_id", id),
			slog.Any("error", err),
		)
		return err
	}

	if err := store.DeleteList(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete todo list",
			slog.String("operation", "DeleteList"),
			slog.String("list_id", id),
			slog.Any("error", err),
		)
		return fmt.Errorf("deleting list: %w", err)
	}

	return nil
}

// AddTodo validates the todo title and appends a new incomplete todo to the
// list. Todo titles only need to satisfy the length rule; duplicates within a
// list are allowed.
func (s *ListService) AddTodo(ctx context.Context, listID, title string) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "adding todo to list", slog.String("list_id", listID))

	store, err := s.stores.StoreFor(ctx)
	if err != nil {
		return nil, err
	}

	if err := todo.ValidateTitle(title); err != nil {
		return nil, err
	}

	created, err := store.CreateTodo(ctx, listID, title)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create todo",
			slog.String("operation", "AddTodo"),
			slog.String("list_id", listID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// RemoveTodo deletes one todo from the specified list.
func (s *ListService) RemoveTodo(ctx context.Context, listID, todoID string) error {
	s.logger.InfoContext(ctx, "removing todo from list",
		slog.String("list_id", listID),
		slog.String("todo_id", todoID),
	)

	store, err := s.stores.StoreFor(ctx)
	if err != nil {
		return err
	}

	if _, err := s.findTodo(ctx, store, listID, todoID); err != nil {
		s.logger.ErrorContext(ctx, "failed to verify todo",
			slog.String("operation", "RemoveTodo"),
			slog.String("list_id", listID),
			slog.String("todo_id", todoID),
			slog.Any("error", err),
		)
		return err
	}

	if err := store.DeleteTodo(ctx, listID, todoID); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete todo",
			slog.String("operation", "RemoveTodo"),
			slog.String("list_id", listID),
			slog.String("todo_id", todoID),
			slog.Any("error", err),
		)
		return fmt.Errorf("deleting todo: %w", err)
	}

	return nil
}

// SetTodoStatus sets a todo's completion flag and returns the updated entity.
func (s *ListService) SetTodoStatus(ctx context.Context, listID, todoID string, completed bool) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "updating todo status",
		slog.String("list_id", listID),
		slog.String("todo_id", todoID),
		slog.Bool("completed", completed),
	)

	store, err := s.stores.StoreFor(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.findTodo(ctx, store, listID, todoID); err != nil {
		s.logger.ErrorContext(ctx, "failed to verify todo",
			slog.String("operation", "SetTodoStatus"),
			slog.String("list_id", listID),
			slog.String("todo_id", todoID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := store.UpdateTodoStatus(ctx, listID, todoID, completed); err != nil {
		s.logger.ErrorContext(ctx, "failed to update todo status",
			slog.String("operation", "SetTodoStatus"),
			slog.String("list_id", listID),
			slog.String("todo_id", todoID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("updating todo status: %w", err)
	}

	updated, err := s.findTodo(ctx, store, listID, todoID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CompleteAll marks every todo in the list completed and returns the updated
// list with its todos sorted by completion status.
func (s *ListService) CompleteAll(ctx context.Context, listID string) (*list.List, error) {
	s.logger.InfoContext(ctx, "completing all todos in list", slog.String("list_id", listID))

	store, err := s.stores.StoreFor(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := store.FindList(ctx, listID); err != nil {
		s.logger.ErrorContext(ctx, "failed to verify todo list",
			slog.String("operation", "CompleteAll"),
			slog.String("list_id", listID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := store.MarkAllTodosCompleted(ctx, listID); err != nil {
		s.logger.ErrorContext(ctx, "failed to complete todos",
			slog.String("operation", "CompleteAll"),
			slog.String("list_id", listID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("completing todos: %w", err)
	}

	updated, err := store.FindList(ctx, listID)
	if err != nil {
		return nil, err
	}
	updated.Todos = sortTodos(updated.Todos)
	return updated, nil
}

// findTodo fetches the list and locates the todo within it.
// Returns domain.ErrNotFound when either the list or the todo is missing.
func (s *ListService) findTodo(ctx context.Context, store ports.ListStore, listID, todoID string) (*todo.Todo, error) {
	l, err := store.FindList(ctx, listID)
	if err != nil {
		return nil, err
	}
	td := l.FindTodo(todoID)
	if td == nil {
		return nil, fmt.Errorf("todo %s in list %s: %w", todoID, listID, domain.ErrNotFound)
	}
	return td, nil
}

// sortTodos orders todos by completion status: incomplete first,
// alphabetical within each group.
func sortTodos(todos []todo.Todo) []todo.Todo {
	return domain.SortByCompletion(todos,
		func(t todo.Todo) string { return t.Title },
		func(t todo.Todo) bool { return t.Completed },
	)
}
