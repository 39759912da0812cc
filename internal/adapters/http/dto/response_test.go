package dto_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mdepalma/todolists/internal/adapters/http/dto"
	"github.com/mdepalma/todolists/internal/domain/list"
	"github.com/mdepalma/todolists/internal/domain/todo"
)

func TestToListResponse(t *testing.T) {
	t.Parallel()

	l := &list.List{
		ID:    "7",
		Title: "Groceries",
		Todos: []todo.Todo{
			{ID: "1", ListID: "7", Title: "milk", Completed: true},
			{ID: "2", ListID: "7", Title: "bread"},
		},
	}

	got := dto.ToListResponse(l)

	if got.ID != "7" {
		t.Errorf("ID = %q, want %q", got.ID, "7")
	}
	if got.Completed {
		t.Error("Completed = true, want false while a todo remains")
	}
	if got.TodosRemaining != 1 {
		t.Errorf("TodosRemaining = %d, want 1", got.TodosRemaining)
	}
	if got.TodosTotal != 2 {
		t.Errorf("TodosTotal = %d, want 2", got.TodosTotal)
	}
	if len(got.Todos) != 2 {
		t.Fatalf("len(Todos) = %d, want 2", len(got.Todos))
	}
	if got.Todos[0].ListID != "7" {
		t.Errorf("Todos[0].ListID = %q, want %q", got.Todos[0].ListID, "7")
	}
}

func TestToListResponse_EmptyListEncodesTodosArray(t *testing.T) {
	t.Parallel()

	resp := dto.ToListResponse(&list.List{ID: "1", Title: "Empty"})

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Clients rely on todos always being an array, never null.
	if !strings.Contains(string(body), `"todos":[]`) {
		t.Errorf("body = %s, want todos encoded as []", body)
	}
	if resp.Completed {
		t.Error("Completed = true, want false for empty list")
	}
}

func TestToListCollectionResponse(t *testing.T) {
	t.Parallel()

	lists := []list.List{
		{ID: "1", Title: "Groceries"},
		{ID: "2", Title: "Errands"},
	}

	got := dto.ToListCollectionResponse(lists)

	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
	if len(got.Lists) != 2 {
		t.Fatalf("len(Lists) = %d, want 2", len(got.Lists))
	}
	if got.Lists[1].Title != "Errands" {
		t.Errorf("Lists[1].Title = %q, want %q", got.Lists[1].Title, "Errands")
	}
}

func TestToTodoResponse(t *testing.T) {
	t.Parallel()

	td := &todo.Todo{ID: "3", ListID: "1", Title: "milk", Completed: true}
	got := dto.ToTodoResponse(td)

	if got.ID != "3" || got.ListID != "1" || got.Title != "milk" || !got.Completed {
		t.Errorf("ToTodoResponse() = %+v, want fields copied from %+v", got, td)
	}
}
