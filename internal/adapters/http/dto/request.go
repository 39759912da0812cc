package dto

import (
	"github.com/mdepalma/todolists/internal/domain"
)

const msgRequired = "is required"

// CreateListRequest represents the JSON body for creating a new todo list.
type CreateListRequest struct {
	Title string `json:"title"`
}

// Validate checks that required fields are present. Title content rules
// (length, uniqueness) are enforced by the domain layer, not here.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateListRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title == "" {
		fields["title"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateListRequest represents the JSON body for renaming an existing list.
type UpdateListRequest struct {
	Title string `json:"title"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateListRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title == "" {
		fields["title"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateTodoRequest represents the JSON body for adding a todo to a list.
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateTodoRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title == "" {
		fields["title"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateTodoRequest represents the JSON body for setting a todo's completion
// status. The pointer distinguishes an omitted field from an explicit false.
type UpdateTodoRequest struct {
	Completed *bool `json:"completed"`
}

// Validate checks that the completed flag is present.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateTodoRequest) Validate() error {
	fields := make(map[string]string)

	if r.Completed == nil {
		fields["completed"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
