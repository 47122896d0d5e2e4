package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/talkincode/mlregistry/internal/domain"
)

func newTestPool(t *testing.T) *ants.Pool {
	t.Helper()
	pool, err := ants.NewPool(4)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Release)
	return pool
}

func TestAsyncModelServiceParity(t *testing.T) {
	sm := newTestSessions(t)
	pool := newTestPool(t)
	async := NewAsyncModelService(sm, pool)
	blocking := NewModelService(sm)
	ctx := context.Background()

	view, err := async.Create(ctx, ModelCreate{Name: "stub_model_v1", Device: domain.DeviceCPU}).Wait(ctx)
	if err != nil {
		t.Fatalf("async create: %v", err)
	}
	if view.ID == 0 {
		t.Fatal("expected hydrated view from async create")
	}

	// The blocking service observes the async write and vice versa.
	got, err := blocking.Get(ctx, view.ID)
	if err != nil || got == nil {
		t.Fatalf("blocking get after async create: %+v %v", got, err)
	}

	gotAsync, err := async.Get(ctx, view.ID).Wait(ctx)
	if err != nil || gotAsync == nil {
		t.Fatalf("async get: %+v %v", gotAsync, err)
	}
	if gotAsync.Name != got.Name || gotAsync.Device != got.Device {
		t.Fatalf("async/blocking views disagree: %+v vs %+v", gotAsync, got)
	}

	// Same error taxonomy through the pool.
	_, err = async.Create(ctx, ModelCreate{Name: "stub_model_v1", Device: domain.DeviceCUDA}).Wait(ctx)
	if !errors.Is(err, ErrDuplicateModelName) {
		t.Fatalf("expected duplicate-name rule violation, got %v", err)
	}

	ok, err := async.Delete(ctx, view.ID).Wait(ctx)
	if err != nil || !ok {
		t.Fatalf("async delete: ok=%v err=%v", ok, err)
	}
}

func TestAsyncMetricService(t *testing.T) {
	sm := newTestSessions(t)
	pool := newTestPool(t)
	models := NewModelService(sm)
	async := NewAsyncMetricService(sm, pool)
	ctx := context.Background()

	model, err := models.Create(ctx, ModelCreate{Name: "stub_model_v1", Device: domain.DeviceCPU})
	if err != nil {
		t.Fatalf("create model: %v", err)
	}

	futures := []*Future[MetricView]{
		async.Create(ctx, MetricCreate{ModelID: model.ID, Name: "accuracy", Value: 0.95}),
		async.Create(ctx, MetricCreate{ModelID: model.ID, Name: "loss", Value: 0.05}),
	}
	for _, f := range futures {
		if _, err := f.Wait(ctx); err != nil {
			t.Fatalf("async metric create: %v", err)
		}
	}

	page, err := async.List(ctx, 0, 10).Wait(ctx)
	if err != nil {
		t.Fatalf("async list: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(page))
	}
}

func TestFutureWaitHonorsContext(t *testing.T) {
	f := newFuture[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	// Completion after an abandoned wait is still observable.
	f.complete(7, nil)
	v, err := f.Wait(context.Background())
	if err != nil || v != 7 {
		t.Fatalf("expected completed value, got %d %v", v, err)
	}
}
