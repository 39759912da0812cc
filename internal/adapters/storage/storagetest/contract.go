// Package storagetest provides a conformance suite that every ListStore
// implementation must pass. The sqlite and session backends run the same
// suite so their externally observable behavior cannot drift apart.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/mdepalma/todolists/internal/domain"
	"github.com/mdepalma/todolists/internal/ports"
)

// Factory builds a fresh, empty store for each subtest.
type Factory func(t *testing.T) ports.ListStore

// RunConformance runs the shared ListStore behavior suite against the store
// built by the factory.
func RunConformance(t *testing.T, newStore Factory) {
	t.Run("AllListsEmpty", func(t *testing.T) {
		store := newStore(t)
		lists, err := store.AllLists(context.Background())
		if err != nil {
			t.Fatalf("AllLists() error = %v", err)
		}
		if len(lists) != 0 {
			t.Errorf("got %d lists, want 0", len(lists))
		}
	})

	t.Run("CreateAndFindList", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		if created.ID == "" {
			t.Fatal("created list has empty ID")
		}
		if created.Title != "Groceries" {
			t.Errorf("Title = %q, want %q", created.Title, "Groceries")
		}

		found, err := store.FindList(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		if found.Title != "Groceries" {
			t.Errorf("found Title = %q, want %q", found.Title, "Groceries")
		}
		if len(found.Todos) != 0 {
			t.Errorf("new list has %d todos, want 0", len(found.Todos))
		}
	})

	t.Run("CreateAssignsDistinctIDs", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		a, err := store.CreateList(ctx, "one")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		b, err := store.CreateList(ctx, "two")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		if a.ID == b.ID {
			t.Errorf("both lists got ID %q", a.ID)
		}
	})

	t.Run("FindListNotFound", func(t *testing.T) {
		store := newStore(t)
		_, err := store.FindList(context.Background(), "does-not-exist")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FindList() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("UpdateListTitle", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		if err := store.UpdateListTitle(ctx, created.ID, "Errands"); err != nil {
			t.Fatalf("UpdateListTitle() error = %v", err)
		}

		found, err := store.FindList(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		if found.Title != "Errands" {
			t.Errorf("Title = %q, want %q", found.Title, "Errands")
		}
	})

	t.Run("UpdateListTitleAbsentIsNoop", func(t *testing.T) {
		store := newStore(t)
		if err := store.UpdateListTitle(context.Background(), "missing", "x"); err != nil {
			t.Errorf("UpdateListTitle() on absent list error = %v, want nil", err)
		}
	})

	t.Run("DeleteListRemovesTodos", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		if _, err := store.CreateTodo(ctx, created.ID, "milk"); err != nil {
			t.Fatalf("CreateTodo() error = %v", err)
		}

		if err := store.DeleteList(ctx, created.ID); err != nil {
			t.Fatalf("DeleteList() error = %v", err)
		}
		if _, err := store.FindList(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FindList() after delete error = %v, want ErrNotFound", err)
		}

		lists, err := store.AllLists(ctx)
		if err != nil {
			t.Fatalf("AllLists() error = %v", err)
		}
		if len(lists) != 0 {
			t.Errorf("got %d lists after delete, want 0", len(lists))
		}

		// The deleted list's ID must now reject todo inserts; a success
		// here means its todos survived as orphans.
		if _, err := store.CreateTodo(ctx, created.ID, "eggs"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("CreateTodo() on deleted list error = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteListAbsentIsNoop", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		if err := store.DeleteList(ctx, "missing"); err != nil {
			t.Errorf("DeleteList() on absent list error = %v, want nil", err)
		}

		// Same for an ID in the store's own format.
		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		if err := store.DeleteList(ctx, created.ID); err != nil {
			t.Fatalf("DeleteList() error = %v", err)
		}
		if err := store.DeleteList(ctx, created.ID); err != nil {
			t.Errorf("DeleteList() twice error = %v, want nil", err)
		}
	})

	t.Run("CreateTodo", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}

		td, err := store.CreateTodo(ctx, created.ID, "milk")
		if err != nil {
			t.Fatalf("CreateTodo() error = %v", err)
		}
		if td.ID == "" {
			t.Error("created todo has empty ID")
		}
		if td.ListID != created.ID {
			t.Errorf("ListID = %q, want %q", td.ListID, created.ID)
		}
		if td.Completed {
			t.Error("new todo is completed, want incomplete")
		}

		found, err := store.FindList(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		if len(found.Todos) != 1 || found.Todos[0].Title != "milk" {
			t.Errorf("Todos = %+v, want one todo titled milk", found.Todos)
		}
	})

	t.Run("CreateTodoDuplicateTitlesAllowed", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		if _, err := store.CreateTodo(ctx, created.ID, "milk"); err != nil {
			t.Fatalf("CreateTodo() error = %v", err)
		}
		if _, err := store.CreateTodo(ctx, created.ID, "milk"); err != nil {
			t.Errorf("CreateTodo() duplicate title error = %v, want nil", err)
		}
	})

	t.Run("CreateTodoListNotFound", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.CreateTodo(ctx, "missing", "milk")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("CreateTodo() error = %v, want ErrNotFound", err)
		}

		// A store-format ID whose list was deleted must fail the same
		// way, not silently insert.
		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		if err := store.DeleteList(ctx, created.ID); err != nil {
			t.Fatalf("DeleteList() error = %v", err)
		}
		if _, err := store.CreateTodo(ctx, created.ID, "milk"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("CreateTodo() on deleted list error = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteTodo", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		td, err := store.CreateTodo(ctx, created.ID, "milk")
		if err != nil {
			t.Fatalf("CreateTodo() error = %v", err)
		}

		if err := store.DeleteTodo(ctx, created.ID, td.ID); err != nil {
			t.Fatalf("DeleteTodo() error = %v", err)
		}

		found, err := store.FindList(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		if len(found.Todos) != 0 {
			t.Errorf("got %d todos after delete, want 0", len(found.Todos))
		}

		// Absent todo or list is a no-op.
		if err := store.DeleteTodo(ctx, created.ID, td.ID); err != nil {
			t.Errorf("DeleteTodo() twice error = %v, want nil", err)
		}
		if err := store.DeleteTodo(ctx, "missing", td.ID); err != nil {
			t.Errorf("DeleteTodo() on absent list error = %v, want nil", err)
		}
	})

	t.Run("UpdateTodoStatus", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		td, err := store.CreateTodo(ctx, created.ID, "milk")
		if err != nil {
			t.Fatalf("CreateTodo() error = %v", err)
		}

		if err := store.UpdateTodoStatus(ctx, created.ID, td.ID, true); err != nil {
			t.Fatalf("UpdateTodoStatus() error = %v", err)
		}
		found, err := store.FindList(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		if !found.Todos[0].Completed {
			t.Error("Completed = false, want true")
		}

		if err := store.UpdateTodoStatus(ctx, created.ID, td.ID, false); err != nil {
			t.Fatalf("UpdateTodoStatus() error = %v", err)
		}
		found, err = store.FindList(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		if found.Todos[0].Completed {
			t.Error("Completed = true, want false")
		}

		// Absent todo is a no-op.
		if err := store.UpdateTodoStatus(ctx, created.ID, "missing", true); err != nil {
			t.Errorf("UpdateTodoStatus() on absent todo error = %v, want nil", err)
		}
	})

	t.Run("MarkAllTodosCompleted", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		for _, title := range []string{"milk", "bread", "eggs"} {
			if _, err := store.CreateTodo(ctx, created.ID, title); err != nil {
				t.Fatalf("CreateTodo(%q) error = %v", title, err)
			}
		}

		if err := store.MarkAllTodosCompleted(ctx, created.ID); err != nil {
			t.Fatalf("MarkAllTodosCompleted() error = %v", err)
		}

		found, err := store.FindList(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		for _, td := range found.Todos {
			if !td.Completed {
				t.Errorf("todo %q not completed", td.Title)
			}
		}

		// Absent list is a no-op.
		if err := store.MarkAllTodosCompleted(ctx, "missing"); err != nil {
			t.Errorf("MarkAllTodosCompleted() on absent list error = %v, want nil", err)
		}
	})

	t.Run("ListsAreIndependent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		first, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		second, err := store.CreateList(ctx, "Errands")
		if err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
		if _, err := store.CreateTodo(ctx, first.ID, "milk"); err != nil {
			t.Fatalf("CreateTodo() error = %v", err)
		}

		if err := store.MarkAllTodosCompleted(ctx, first.ID); err != nil {
			t.Fatalf("MarkAllTodosCompleted() error = %v", err)
		}

		other, err := store.FindList(ctx, second.ID)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		if len(other.Todos) != 0 {
			t.Errorf("second list has %d todos, want 0", len(other.Todos))
		}
	})
}
