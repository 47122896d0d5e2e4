package catalog

import (
	"context"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/talkincode/mlregistry/internal/domain"
)

// Future holds the eventual outcome of an asynchronously submitted
// operation. Wait may be called any number of times.
type Future[V any] struct {
	done chan struct{}
	val  V
	err  error
}

func newFuture[V any]() *Future[V] {
	return &Future[V]{done: make(chan struct{})}
}

func (f *Future[V]) complete(val V, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Wait blocks until the operation finishes or ctx expires. Cancelling the
// wait does not cancel the operation itself; that is bounded by the context
// given at submit time.
func (f *Future[V]) Wait(ctx context.Context) (V, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// AsyncService runs the blocking service's operations on a shared worker
// pool, returning futures instead of blocking the caller. External behavior
// is otherwise identical: one unit of work per operation, same error
// taxonomy, same views.
type AsyncService[T any, C Payload, U Payload, V any] struct {
	svc  *Service[T, C, U, V]
	pool *ants.Pool
}

func NewAsyncService[T any, C Payload, U Payload, V any](svc *Service[T, C, U, V], pool *ants.Pool) *AsyncService[T, C, U, V] {
	return &AsyncService[T, C, U, V]{svc: svc, pool: pool}
}

func submit[V any](pool *ants.Pool, f *Future[V], run func() (V, error)) *Future[V] {
	if err := pool.Submit(func() { f.complete(run()) }); err != nil {
		var zero V
		f.complete(zero, errors.Wrap(err, "submit task"))
	}
	return f
}

func (a *AsyncService[T, C, U, V]) Create(ctx context.Context, payload C) *Future[V] {
	return submit(a.pool, newFuture[V](), func() (V, error) {
		return a.svc.Create(ctx, payload)
	})
}

func (a *AsyncService[T, C, U, V]) Get(ctx context.Context, id int64) *Future[*V] {
	return submit(a.pool, newFuture[*V](), func() (*V, error) {
		return a.svc.Get(ctx, id)
	})
}

func (a *AsyncService[T, C, U, V]) List(ctx context.Context, skip, limit int) *Future[[]V] {
	return submit(a.pool, newFuture[[]V](), func() ([]V, error) {
		return a.svc.List(ctx, skip, limit)
	})
}

func (a *AsyncService[T, C, U, V]) Update(ctx context.Context, id int64, payload U) *Future[*V] {
	return submit(a.pool, newFuture[*V](), func() (*V, error) {
		return a.svc.Update(ctx, id, payload)
	})
}

func (a *AsyncService[T, C, U, V]) Delete(ctx context.Context, id int64) *Future[bool] {
	return submit(a.pool, newFuture[bool](), func() (bool, error) {
		return a.svc.Delete(ctx, id)
	})
}

// Concrete async bindings share the blocking services' hooks and views.

type AsyncModelService struct {
	*AsyncService[domain.MLModel, ModelCreate, ModelUpdate, ModelView]
}

func NewAsyncModelService(sessions *SessionManager, pool *ants.Pool) *AsyncModelService {
	return &AsyncModelService{NewAsyncService(NewModelService(sessions).Service, pool)}
}

type AsyncMetricService struct {
	*AsyncService[domain.MLMetric, MetricCreate, MetricUpdate, MetricView]
}

func NewAsyncMetricService(sessions *SessionManager, pool *ants.Pool) *AsyncMetricService {
	return &AsyncMetricService{NewAsyncService(NewMetricService(sessions).Service, pool)}
}
