// Package list defines the List entity, its title validation, and the
// completion predicate used for display ordering.
package list

import (
	"unicode/utf8"

	"github.com/mdepalma/todolists/internal/domain"
	"github.com/mdepalma/todolists/internal/domain/todo"
)

// MaxTitleLength is the inclusive upper bound on list title length in runes.
const MaxTitleLength = 100

// List represents a named, ordered collection of todos. Titles are unique
// across all lists (case-sensitive exact match).
type List struct {
	ID    string
	Title string
	Todos []todo.Todo
}

// TodosRemaining returns the number of incomplete todos in the list.
func (l *List) TodosRemaining() int {
	remaining := 0
	for _, t := range l.Todos {
		if !t.Completed {
			remaining++
		}
	}
	return remaining
}

// Completed reports whether the list counts as done for display ordering:
// it has at least one todo and none of them are incomplete.
func (l *List) Completed() bool {
	return len(l.Todos) > 0 && l.TodosRemaining() == 0
}

// FindTodo returns the todo with the given ID, or nil if the list has no
// such todo.
func (l *List) FindTodo(id string) *todo.Todo {
	for i := range l.Todos {
		if l.Todos[i].ID == id {
			return &l.Todos[i]
		}
	}
	return nil
}

// ValidateTitle checks business rules for a new or renamed list title
// against the full set of existing lists. The duplicate check runs first
// (case-sensitive exact match), then the length rule.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation),
// or nil if all rules pass.
func ValidateTitle(title string, existing []List) error {
	for i := range existing {
		if existing[i].Title == title {
			return &domain.ValidationError{
				Fields: map[string]string{"title": domain.MsgTitleDuplicate},
			}
		}
	}

	n := utf8.RuneCountInString(title)
	if n < 1 || n > MaxTitleLength {
		return &domain.ValidationError{
			Fields: map[string]string{"title": domain.MsgTitleLength},
		}
	}
	return nil
}
