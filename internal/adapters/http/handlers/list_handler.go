// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/mdepalma/todolists/internal/adapters/http/dto"
	"github.com/mdepalma/todolists/internal/ports"
)

// ListHandler handles HTTP requests for todo list CRUD and nested todo
// operations.
type ListHandler struct {
	svc ports.ListService
}

// NewListHandler creates a new ListHandler with the given service port.
func NewListHandler(svc ports.ListService) *ListHandler {
	return &ListHandler{svc: svc}
}

// ListLists handles GET /api/v1/lists.
func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.svc.ListLists(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListCollectionResponse(lists))
}

// CreateList handles POST /api/v1/lists.
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateList(r.Context(), req.Title)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToListResponse(created))
}

// GetList handles GET /api/v1/lists/{listId}.
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	l, err := h.svc.GetList(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListResponse(l))
}

// RenameList handles PATCH /api/v1/lists/{listId}.
func (h *ListHandler) RenameList(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.RenameList(r.Context(), id, req.Title)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListResponse(updated))
}

// DeleteList handles DELETE /api/v1/lists/{listId}.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteList(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
