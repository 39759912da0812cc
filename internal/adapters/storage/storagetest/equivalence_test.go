package storagetest_test

import (
	"context"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/mdepalma/todolists/internal/adapters/storage/session"
	"github.com/mdepalma/todolists/internal/adapters/storage/sqlite"
	"github.com/mdepalma/todolists/internal/ports"
)

// todoShape and listShape capture a store's observable state with the
// store-specific IDs stripped, so the two backends can be compared
// directly.
type todoShape struct {
	Title     string
	Completed bool
}

type listShape struct {
	Title string
	Todos []todoShape
}

// runScript drives one fixed operation sequence against a store,
// including absent-entity no-ops.
func runScript(t *testing.T, store ports.ListStore) {
	t.Helper()
	ctx := context.Background()

	groceries, err := store.CreateList(ctx, "Groceries")
	if err != nil {
		t.Fatalf("CreateList(Groceries) error = %v", err)
	}
	errands, err := store.CreateList(ctx, "Errands")
	if err != nil {
		t.Fatalf("CreateList(Errands) error = %v", err)
	}

	milk, err := store.CreateTodo(ctx, groceries.ID, "milk")
	if err != nil {
		t.Fatalf("CreateTodo(milk) error = %v", err)
	}
	bread, err := store.CreateTodo(ctx, groceries.ID, "bread")
	if err != nil {
		t.Fatalf("CreateTodo(bread) error = %v", err)
	}
	if _, err := store.CreateTodo(ctx, errands.ID, "post office"); err != nil {
		t.Fatalf("CreateTodo(post office) error = %v", err)
	}

	if err := store.UpdateTodoStatus(ctx, groceries.ID, milk.ID, true); err != nil {
		t.Fatalf("UpdateTodoStatus() error = %v", err)
	}
	if err := store.DeleteTodo(ctx, groceries.ID, bread.ID); err != nil {
		t.Fatalf("DeleteTodo() error = %v", err)
	}
	if err := store.UpdateListTitle(ctx, errands.ID, "Chores"); err != nil {
		t.Fatalf("UpdateListTitle() error = %v", err)
	}
	if err := store.MarkAllTodosCompleted(ctx, errands.ID); err != nil {
		t.Fatalf("MarkAllTodosCompleted() error = %v", err)
	}

	done, err := store.CreateList(ctx, "Done")
	if err != nil {
		t.Fatalf("CreateList(Done) error = %v", err)
	}
	if err := store.DeleteList(ctx, done.ID); err != nil {
		t.Fatalf("DeleteList() error = %v", err)
	}

	// Absent-entity no-ops must leave both stores untouched.
	if err := store.UpdateListTitle(ctx, done.ID, "x"); err != nil {
		t.Fatalf("UpdateListTitle() on deleted list error = %v", err)
	}
	if err := store.DeleteTodo(ctx, groceries.ID, bread.ID); err != nil {
		t.Fatalf("DeleteTodo() twice error = %v", err)
	}
	if err := store.MarkAllTodosCompleted(ctx, done.ID); err != nil {
		t.Fatalf("MarkAllTodosCompleted() on deleted list error = %v", err)
	}
}

// shape reads the store's full state and normalizes ordering by title.
func shape(t *testing.T, store ports.ListStore) []listShape {
	t.Helper()

	lists, err := store.AllLists(context.Background())
	if err != nil {
		t.Fatalf("AllLists() error = %v", err)
	}

	out := make([]listShape, 0, len(lists))
	for _, l := range lists {
		todos := make([]todoShape, 0, len(l.Todos))
		for _, td := range l.Todos {
			todos = append(todos, todoShape{Title: td.Title, Completed: td.Completed})
		}
		slices.SortFunc(todos, func(a, b todoShape) int {
			return strings.Compare(a.Title, b.Title)
		})
		out = append(out, listShape{Title: l.Title, Todos: todos})
	}
	slices.SortFunc(out, func(a, b listShape) int {
		return strings.Compare(a.Title, b.Title)
	})
	return out
}

func TestBackendEquivalence(t *testing.T) {
	t.Parallel()

	sqliteStore, err := sqlite.Open(filepath.Join(t.TempDir(), "todos.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := sqliteStore.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	sessionStore := session.NewStore(session.NewState())

	runScript(t, sqliteStore)
	runScript(t, sessionStore)

	got := shape(t, sqliteStore)
	want := shape(t, sessionStore)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("backend states diverge after identical operations:\nsqlite  = %+v\nsession = %+v", got, want)
	}

	want = []listShape{
		{Title: "Chores", Todos: []todoShape{{Title: "post office", Completed: true}}},
		{Title: "Groceries", Todos: []todoShape{{Title: "milk", Completed: true}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("observable state = %+v, want %+v", got, want)
	}
}
