// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/mdepalma/todolists/internal/domain/list"
	"github.com/mdepalma/todolists/internal/domain/todo"
)

// ListResponse represents a single todo list in HTTP responses.
type ListResponse struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Completed      bool           `json:"completed"`
	TodosRemaining int            `json:"todos_remaining"`
	TodosTotal     int            `json:"todos_total"`
	Todos          []TodoResponse `json:"todos"`
}

// ListCollectionResponse represents all lists in HTTP responses.
type ListCollectionResponse struct {
	Lists []ListResponse `json:"lists"`
	Count int            `json:"count"`
}

// ToListResponse converts a domain List entity to an HTTP response DTO.
// Todos is always present, as an empty array for an empty list.
func ToListResponse(l *list.List) ListResponse {
	todos := make([]TodoResponse, len(l.Todos))
	for i := range l.Todos {
		todos[i] = ToTodoResponse(&l.Todos[i])
	}

	return ListResponse{
		ID:             l.ID,
		Title:          l.Title,
		Completed:      l.Completed(),
		TodosRemaining: l.TodosRemaining(),
		TodosTotal:     len(l.Todos),
		Todos:          todos,
	}
}

// ToListCollectionResponse converts a slice of domain List entities to an
// HTTP collection response DTO.
func ToListCollectionResponse(lists []list.List) ListCollectionResponse {
	items := make([]ListResponse, len(lists))
	for i := range lists {
		items[i] = ToListResponse(&lists[i])
	}
	return ListCollectionResponse{
		Lists: items,
		Count: len(items),
	}
}

// TodoResponse represents a single todo item in HTTP responses.
type TodoResponse struct {
	ID        string `json:"id"`
	ListID    string `json:"list_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ToTodoResponse converts a domain Todo entity to an HTTP response DTO.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		ListID:    t.ListID,
		Title:     t.Title,
		Completed: t.Completed,
	}
}
