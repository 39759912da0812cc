package session

import (
	"context"
	"errors"
	"slices"

	"github.com/mdepalma/todolists/internal/domain"
	"github.com/mdepalma/todolists/internal/domain/list"
	"github.com/mdepalma/todolists/internal/domain/todo"
	"github.com/mdepalma/todolists/internal/ports"
)

// Compile-time check that Store implements ports.ListStore.
var _ ports.ListStore = (*Store)(nil)

// ErrNoSessionState is returned by the Provider when a request reaches the
// service without the session middleware having attached a state.
var ErrNoSessionState = errors.New("session: no state in request context")

// Store implements ports.ListStore over a single user's session state.
// All operations are in-memory collection edits; every mutation marks the
// state dirty. Construct one per request around the request's state.
type Store struct {
	state *State
}

// NewStore creates a Store bound to the given session state.
func NewStore(state *State) *Store {
	return &Store{state: state}
}

// AllLists returns a deep copy of every list with its todos populated.
func (s *Store) AllLists(_ context.Context) ([]list.List, error) {
	out := make([]list.List, len(s.state.lists))
	for i := range s.state.lists {
		out[i] = copyList(&s.state.lists[i])
	}
	return out, nil
}

// FindList returns a deep copy of the list with the given ID.
func (s *Store) FindList(_ context.Context, id string) (*list.List, error) {
	l := s.lookup(id)
	if l == nil {
		return nil, domain.ErrNotFound
	}
	cp := copyList(l)
	return &cp, nil
}

// CreateList appends a new list with an empty todo collection.
func (s *Store) CreateList(_ context.Context, title string) (*list.List, error) {
	l := list.List{
		ID:    newID(),
		Title: title,
	}
	s.state.lists = append(s.state.lists, l)
	s.state.markDirty()

	cp := copyList(&l)
	return &cp, nil
}

// UpdateListTitle sets a list's title. A no-op if the ID is absent.
func (s *Store) UpdateListTitle(_ context.Context, id, title string) error {
	l := s.lookup(id)
	if l == nil {
		return nil
	}
	l.Title = title
	s.state.markDirty()
	return nil
}

// DeleteList removes a list; its todos go with it. An absent ID is a
// no-op and leaves the state clean.
func (s *Store) DeleteList(_ context.Context, id string) error {
	before := len(s.state.lists)
	s.state.lists = slices.DeleteFunc(s.state.lists, func(l list.List) bool {
		return l.ID == id
	})
	if len(s.state.lists) != before {
		s.state.markDirty()
	}
	return nil
}

// CreateTodo appends a todo to the named list.
func (s *Store) CreateTodo(_ context.Context, listID, title string) (*todo.Todo, error) {
	l := s.lookup(listID)
	if l == nil {
		return nil, domain.ErrNotFound
	}

	t := todo.Todo{
		ID:     newID(),
		ListID: listID,
		Title:  title,
	}
	l.Todos = append(l.Todos, t)
	s.state.markDirty()
	return &t, nil
}

// DeleteTodo removes one todo. A no-op if the list or todo is absent,
// matching the relational variant's zero-row delete.
func (s *Store) DeleteTodo(_ context.Context, listID, todoID string) error {
	l := s.lookup(listID)
	if l == nil {
		return nil
	}
	before := len(l.Todos)
	l.Todos = slices.DeleteFunc(l.Todos, func(t todo.Todo) bool {
		return t.ID == todoID
	})
	if len(l.Todos) != before {
		s.state.markDirty()
	}
	return nil
}

// UpdateTodoStatus sets a todo's completion flag. A no-op if the list or
// todo is absent, matching the relational variant's zero-row update.
func (s *Store) UpdateTodoStatus(_ context.Context, listID, todoID string, completed bool) error {
	l := s.lookup(listID)
	if l == nil {
		return nil
	}
	for i := range l.Todos {
		if l.Todos[i].ID == todoID {
			l.Todos[i].Completed = completed
			s.state.markDirty()
			return nil
		}
	}
	return nil
}

// MarkAllTodosCompleted sets the completion flag true for every todo in
// the list.
func (s *Store) MarkAllTodosCompleted(_ context.Context, listID string) error {
	l := s.lookup(listID)
	if l == nil {
		return nil
	}
	for i := range l.Todos {
		l.Todos[i].Completed = true
	}
	s.state.markDirty()
	return nil
}

// lookup returns the stored list with the given ID, or nil.
func (s *Store) lookup(id string) *list.List {
	for i := range s.state.lists {
		if s.state.lists[i].ID == id {
			return &s.state.lists[i]
		}
	}
	return nil
}

// copyList deep-copies a list so callers cannot mutate session state
// through returned entities.
func copyList(l *list.List) list.List {
	cp := *l
	cp.Todos = slices.Clone(l.Todos)
	return cp
}

// Provider resolves the per-request store from the session state the
// session middleware placed in the request context.
type Provider struct{}

// NewProvider creates a session store provider.
func NewProvider() Provider {
	return Provider{}
}

// StoreFor returns a Store bound to the request's session state.
// Returns ErrNoSessionState if the session middleware is not installed.
func (Provider) StoreFor(ctx context.Context) (ports.ListStore, error) {
	state := StateFromContext(ctx)
	if state == nil {
		return nil, ErrNoSessionState
	}
	return NewStore(state), nil
}
