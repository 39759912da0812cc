// Package todo defines the Todo entity and its title validation.
package todo

import (
	"unicode/utf8"

	"github.com/mdepalma/todolists/internal/domain"
)

// MaxTitleLength is the inclusive upper bound on todo title length in runes.
const MaxTitleLength = 100

// Todo represents a single actionable item owned by exactly one list.
// IDs are opaque strings: the relational store assigns sequential integers
// rendered as decimal strings, the session store assigns random hex tokens.
type Todo struct {
	ID        string
	ListID    string
	Title     string
	Completed bool
}

// ValidateTitle checks the title length rule for todos.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation),
// or nil if the title is between 1 and 100 characters.
func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 1 || n > MaxTitleLength {
		return &domain.ValidationError{
			Fields: map[string]string{"title": domain.MsgTitleLength},
		}
	}
	return nil
}
