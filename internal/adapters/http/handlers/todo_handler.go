package handlers

import (
	"net/http"

	"github.com/mdepalma/todolists/internal/adapters/http/dto"
	"github.com/mdepalma/todolists/internal/ports"
)

// TodoHandler handles HTTP requests for todos nested under a list.
type TodoHandler struct {
	svc ports.ListService
}

// NewTodoHandler creates a new TodoHandler with the given service port.
func NewTodoHandler(svc ports.ListService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// AddTodo handles POST /api/v1/lists/{listId}/todos.
func (h *TodoHandler) AddTodo(w http.ResponseWriter, r *http.Request) {
	listID, err := pathParam(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateTodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.AddTodo(r.Context(), listID, req.Title)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTodoResponse(created))
}

// UpdateTodo handles PATCH /api/v1/lists/{listId}/todos/{todoId}.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	listID, err := pathParam(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	todoID, err := pathParam(r, "todoId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateTodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.SetTodoStatus(r.Context(), listID, todoID, *req.Completed)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(updated))
}

// RemoveTodo handles DELETE /api/v1/lists/{listId}/todos/{todoId}.
func (h *TodoHandler) RemoveTodo(w http.ResponseWriter, r *http.Request) {
	listID, err := pathParam(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	todoID, err := pathParam(r, "todoId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.RemoveTodo(r.Context(), listID, todoID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompleteAll handles POST /api/v1/lists/{listId}/todos/complete_all.
func (h *TodoHandler) CompleteAll(w http.ResponseWriter, r *http.Request) {
	listID, err := pathParam(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	updated, err := h.svc.CompleteAll(r.Context(), listID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListResponse(updated))
}
