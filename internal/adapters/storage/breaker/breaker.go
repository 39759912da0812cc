// Package breaker decorates a ListStore with a circuit breaker and
// per-operation metrics. It protects the service from a dead or wedged
// database: after enough consecutive failures the breaker opens and
// operations fail fast with domain.ErrUnavailable instead of piling up on
// a broken connection.
//
// Business errors (not found, validation) count as successes; only
// infrastructure failures trip the breaker.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/metric"

	"github.com/mdepalma/todolists/internal/domain"
	"github.com/mdepalma/todolists/internal/domain/list"
	"github.com/mdepalma/todolists/internal/domain/todo"
	"github.com/mdepalma/todolists/internal/platform/config"
	"github.com/mdepalma/todolists/internal/platform/telemetry"
	"github.com/mdepalma/todolists/internal/ports"
)

// Compile-time check that Store implements ports.ListStore.
var _ ports.ListStore = (*Store)(nil)

// Store wraps an inner ListStore with a shared circuit breaker.
type Store struct {
	inner   ports.ListStore
	breaker *gobreaker.CircuitBreaker[any]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New creates a breaker-guarded store around inner. If metrics is nil,
// metric recording is skipped.
func New(inner ports.ListStore, cfg config.CircuitBreakerConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "list-store",
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			// Not-found and validation outcomes are healthy storage behavior.
			return err == nil || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Store{
		inner:   inner,
		breaker: cb,
		metrics: metrics,
		logger:  logger,
	}
}

// AllLists implements ports.ListStore.
func (s *Store) AllLists(ctx context.Context) ([]list.List, error) {
	return execute(ctx, s, "AllLists", func() ([]list.List, error) {
		return s.inner.AllLists(ctx)
	})
}

// FindList implements ports.ListStore.
func (s *Store) FindList(ctx context.Context, id string) (*list.List, error) {
	return execute(ctx, s, "FindList", func() (*list.List, error) {
		return s.inner.FindList(ctx, id)
	})
}

// CreateList implements ports.ListStore.
func (s *Store) CreateList(ctx context.Context, title string) (*list.List, error) {
	return execute(ctx, s, "CreateList", func() (*list.List, error) {
		return s.inner.CreateList(ctx, title)
	})
}

// UpdateListTitle implements ports.ListStore.
func (s *Store) UpdateListTitle(ctx context.Context, id, title string) error {
	_, err := execute(ctx, s, "UpdateListTitle", func() (struct{}, error) {
		return struct{}{}, s.inner.UpdateListTitle(ctx, id, title)
	})
	return err
}

// DeleteList implements ports.ListStore.
func (s *Store) DeleteList(ctx context.Context, id string) error {
	_, err := execute(ctx, s, "DeleteList", func() (struct{}, error) {
		return struct{}{}, s.inner.DeleteList(ctx, id)
	})
	return err
}

// CreateTodo implements ports.ListStore.
func (s *Store) CreateTodo(ctx context.Context, listID, title string) (*todo.Todo, error) {
	return execute(ctx, s, "CreateTodo", func() (*todo.Todo, error) {
		return s.inner.CreateTodo(ctx, listID, title)
	})
}

// DeleteTodo implements ports.ListStore.
func (s *Store) DeleteTodo(ctx context.Context, listID, todoID string) error {
	_, err := execute(ctx, s, "DeleteTodo", func() (struct{}, error) {
		return struct{}{}, s.inner.DeleteTodo(ctx, listID, todoID)
	})
	return err
}

// UpdateTodoStatus implements ports.ListStore.
func (s *Store) UpdateTodoStatus(ctx context.Context, listID, todoID string, completed bool) error {
	_, err := execute(ctx, s, "UpdateTodoStatus", func() (struct{}, error) {
		return struct{}{}, s.inner.UpdateTodoStatus(ctx, listID, todoID, completed)
	})
	return err
}

// MarkAllTodosCompleted implements ports.ListStore.
func (s *Store) MarkAllTodosCompleted(ctx context.Context, listID string) error {
	_, err := execute(ctx, s, "MarkAllTodosCompleted", func() (struct{}, error) {
		return struct{}{}, s.inner.MarkAllTodosCompleted(ctx, listID)
	})
	return err
}

// execute runs one store operation through the breaker, recording duration
// and outcome metrics keyed by operation name.
func execute[T any](ctx context.Context, s *Store, op string, fn func() (T, error)) (T, error) {
	start := time.Now()

	res, err := s.breaker.Execute(func() (any, error) {
		return fn()
	})

	s.record(ctx, op, time.Since(start), err)

	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("store %s: %w", op, domain.ErrUnavailable)
		}
		return zero, err
	}

	val, ok := res.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("store %s: unexpected result type %T", op, res)
	}
	return val, nil
}

// record emits store operation metrics. Safe to call with nil metrics.
func (s *Store) record(ctx context.Context, op string, elapsed time.Duration, err error) {
	if s.metrics == nil {
		return
	}

	result := "success"
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrStoreOp.String(op),
		telemetry.AttrResult.String(result),
	)
	s.metrics.StoreOpDuration.Record(ctx, elapsed.Seconds(), attrs)
	s.metrics.StoreOpTotal.Add(ctx, 1, attrs)
}

// toUint32 converts a non-negative int, clamping negatives to zero.
func toUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
