// Package sqlite provides the durable relational storage backend. Lists and
// todos live in two tables joined by a cascade-delete foreign key. The
// driver is modernc.org/sqlite (pure Go, no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	msqlite "modernc.org/sqlite"

	"github.com/mdepalma/todolists/internal/domain"
	"github.com/mdepalma/todolists/internal/domain/list"
	"github.com/mdepalma/todolists/internal/domain/todo"
	"github.com/mdepalma/todolists/internal/ports"
)

// Compile-time checks.
var (
	_ ports.ListStore     = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// sqliteConstraintForeignKey is the extended result code SQLite reports when
// an insert violates a foreign key, i.e. the referenced list is gone.
const sqliteConstraintForeignKey = 787

// Store implements ports.ListStore over a SQLite database. Each operation
// executes a single statement (list reads add a per-list todo fetch)
// against the shared connection pool; no connection is held across
// operations. IDs are store-assigned sequential integers rendered as
// decimal strings at the domain boundary.
type Store struct {
	db *sql.DB
}

// Open opens the database at path and lazily creates the schema if it is
// absent. The check-then-create is idempotent, so concurrent first opens
// and reopens of an existing file are both safe.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: storage path is required")
	}

	// The _pragma form is the modernc driver's connection-string syntax;
	// it applies to every pooled connection.
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := ensureForeignKeysEnabled(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.setupSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup schema: %w", err)
	}
	return store, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name identifies the store in health check output.
func (s *Store) Name() string {
	return "sqlite"
}

// HealthCheck pings the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ensureForeignKeysEnabled verifies the foreign_keys pragma actually took
// effect. The todos cascade delete and the absent-list insert rejection
// both depend on it.
func ensureForeignKeysEnabled(db *sql.DB) error {
	var enabled int
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled); err != nil {
		return fmt.Errorf("check foreign_keys pragma: %w", err)
	}
	if enabled != 1 {
		return errors.New("sqlite: foreign keys are disabled")
	}
	return nil
}

// setupSchema creates the lists and todos tables if they do not exist yet.
func (s *Store) setupSchema(ctx context.Context) error {
	tables := []struct {
		name string
		ddl  string
	}{
		{
			name: "lists",
			ddl: `CREATE TABLE lists (
				id INTEGER PRIMARY KEY,
				title TEXT NOT NULL UNIQUE
			)`,
		},
		{
			name: "todos",
			ddl: `CREATE TABLE todos (
				id INTEGER PRIMARY KEY,
				title TEXT NOT NULL,
				completed INTEGER NOT NULL DEFAULT 0,
				list_id INTEGER NOT NULL REFERENCES lists (id) ON DELETE CASCADE
			)`,
		},
	}

	for _, table := range tables {
		var count int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
			table.name,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("check table %s: %w", table.name, err)
		}
		if count > 0 {
			continue
		}
		if _, err := s.db.ExecContext(ctx, table.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", table.name, err)
		}
	}
	return nil
}

// AllLists returns every list with its todos populated.
func (s *Store) AllLists(ctx context.Context) ([]list.List, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM lists`)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	lists := []list.List{}
	for rows.Next() {
		var id int64
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, list.List{
			ID:    strconv.FormatInt(id, 10),
			Title: title,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}

	for i := range lists {
		todos, err := s.findTodos(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Todos = todos
	}
	return lists, nil
}

// FindList returns a single list by ID with its todos populated.
func (s *Store) FindList(ctx context.Context, id string) (*list.List, error) {
	numID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	var title string
	err := s.db.QueryRowContext(ctx,
		`SELECT title FROM lists WHERE id = ?`, numID,
	).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query list %s: %w", id, err)
	}

	todos, err := s.findTodos(ctx, id)
	if err != nil {
		return nil, err
	}
	return &list.List{ID: id, Title: title, Todos: todos}, nil
}

// CreateList inserts a new list with an empty todo collection.
func (s *Store) CreateList(ctx context.Context, title string) (*list.List, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO lists (title) VALUES (?)`, title,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("list insert id: %w", err)
	}
	return &list.List{
		ID:    strconv.FormatInt(id, 10),
		Title: title,
		Todos: []todo.Todo{},
	}, nil
}

// UpdateListTitle sets a list's title. A no-op if the ID is absent.
func (s *Store) UpdateListTitle(ctx context.Context, id, title string) error {
	numID, ok := parseID(id)
	if !ok {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE lists SET title = ? WHERE id = ?`, title, numID,
	); err != nil {
		return fmt.Errorf("update list %s: %w", id, err)
	}
	return nil
}

// DeleteList removes a list; the foreign key cascade removes its todos.
func (s *Store) DeleteList(ctx context.Context, id string) error {
	numID, ok := parseID(id)
	if !ok {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM lists WHERE id = ?`, numID,
	); err != nil {
		return fmt.Errorf("delete list %s: %w", id, err)
	}
	return nil
}

// CreateTodo appends a todo to the named list.
func (s *Store) CreateTodo(ctx context.Context, listID, title string) (*todo.Todo, error) {
	numListID, ok := parseID(listID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (list_id, title) VALUES (?, ?)`, numListID, title,
	)
	if err != nil {
		var serr *msqlite.Error
		if errors.As(err, &serr) && serr.Code() == sqliteConstraintForeignKey {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("todo insert id: %w", err)
	}
	return &todo.Todo{
		ID:     strconv.FormatInt(id, 10),
		ListID: listID,
		Title:  title,
	}, nil
}

// DeleteTodo removes one todo from a list.
func (s *Store) DeleteTodo(ctx context.Context, listID, todoID string) error {
	numListID, okList := parseID(listID)
	numTodoID, okTodo := parseID(todoID)
	if !okList || !okTodo {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM todos WHERE list_id = ? AND id = ?`, numListID, numTodoID,
	); err != nil {
		return fmt.Errorf("delete todo %s/%s: %w", listID, todoID, err)
	}
	return nil
}

// UpdateTodoStatus sets a todo's completion flag.
func (s *Store) UpdateTodoStatus(ctx context.Context, listID, todoID string, completed bool) error {
	numListID, okList := parseID(listID)
	numTodoID, okTodo := parseID(todoID)
	if !okList || !okTodo {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE todos SET completed = ? WHERE list_id = ? AND id = ?`,
		boolToInt(completed), numListID, numTodoID,
	); err != nil {
		return fmt.Errorf("update todo %s/%s: %w", listID, todoID, err)
	}
	return nil
}

// MarkAllTodosCompleted sets the completion flag true for every todo in
// the list.
func (s *Store) MarkAllTodosCompleted(ctx context.Context, listID string) error {
	numListID, ok := parseID(listID)
	if !ok {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE todos SET completed = 1 WHERE list_id = ?`, numListID,
	); err != nil {
		return fmt.Errorf("mark all completed %s: %w", listID, err)
	}
	return nil
}

// findTodos fetches the todos belonging to one list.
func (s *Store) findTodos(ctx context.Context, listID string) ([]todo.Todo, error) {
	numListID, ok := parseID(listID)
	if !ok {
		return []todo.Todo{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, completed FROM todos WHERE list_id = ?`, numListID,
	)
	if err != nil {
		return nil, fmt.Errorf("query todos for list %s: %w", listID, err)
	}
	defer rows.Close()

	todos := []todo.Todo{}
	for rows.Next() {
		var id int64
		var title string
		var completed int64
		if err := rows.Scan(&id, &title, &completed); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, todo.Todo{
			ID:        strconv.FormatInt(id, 10),
			ListID:    listID,
			Title:     title,
			Completed: completed != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

// parseID converts a domain-boundary ID into its integer form. IDs that
// never came from this store parse as absent.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
