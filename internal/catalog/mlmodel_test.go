package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talkincode/mlregistry/internal/domain"
	"golang.org/x/sync/errgroup"
)

func TestModelServiceCreateGetRoundtrip(t *testing.T) {
	sm := newTestSessions(t)
	svc := NewModelService(sm)
	ctx := context.Background()

	view, err := svc.Create(ctx, ModelCreate{Name: "stub_model_v1", Device: domain.DeviceCPU})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.ID == 0 || view.CreatedAt.IsZero() || view.UpdatedAt.IsZero() {
		t.Fatalf("expected hydrated view, got %+v", view)
	}

	got, err := svc.Get(ctx, view.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record after create")
	}
	if got.ID != view.ID || got.Name != view.Name || got.Device != view.Device {
		t.Fatalf("get mismatch: %+v vs %+v", got, view)
	}
	if !closeTimes(got.CreatedAt, view.CreatedAt) {
		t.Fatalf("created_at drifted: %v vs %v", got.CreatedAt, view.CreatedAt)
	}
}

func TestModelServiceDuplicateName(t *testing.T) {
	sm := newTestSessions(t)
	svc := NewModelService(sm)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ModelCreate{Name: "stub_model_v1", Device: domain.DeviceCPU}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, ModelCreate{Name: "stub_model_v1", Device: domain.DeviceCUDA})
	if err == nil {
		t.Fatal("expected duplicate name to fail")
	}
	if !errors.Is(err, ErrDuplicateModelName) || !errors.Is(err, ErrRuleViolation) {
		t.Fatalf("expected duplicate-name rule violation, got %v", err)
	}

	if n := countModels(t, sm); n != 1 {
		t.Fatalf("no second row may be persisted, got %d", n)
	}
}

func TestModelServiceGetNotFound(t *testing.T) {
	svc := NewModelService(newTestSessions(t))

	got, err := svc.Get(context.Background(), 404)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected absent result, got %+v", got)
	}
}

func TestModelServiceUpdateDevice(t *testing.T) {
	sm := newTestSessions(t)
	svc := NewModelService(sm)
	ctx := context.Background()

	view, err := svc.Create(ctx, ModelCreate{Name: "stub_model_v1", Device: domain.DeviceCPU})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	updated, err := svc.Update(ctx, view.ID, ModelUpdate{Device: domain.DeviceCUDA})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated view")
	}
	if updated.Device != domain.DeviceCUDA || updated.Name != "stub_model_v1" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if !updated.UpdatedAt.After(view.UpdatedAt) {
		t.Fatal("updated_at should advance")
	}

	// Absent target: no hooks, no write, absent result.
	missing, err := svc.Update(ctx, 404, ModelUpdate{Device: domain.DeviceCPU})
	if err != nil {
		t.Fatalf("update absent: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for absent id, got %+v", missing)
	}
}

func TestModelServiceListPages(t *testing.T) {
	sm := newTestSessions(t)
	svc := NewModelService(sm)
	ctx := context.Background()

	names := []string{"alpha", "beta", "gamma", "delta"}
	for _, n := range names {
		if _, err := svc.Create(ctx, ModelCreate{Name: n, Device: domain.DeviceCPU}); err != nil {
			t.Fatalf("create %s: %v", n, err)
		}
	}

	first, err := svc.List(ctx, 0, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	second, err := svc.List(ctx, 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2+2 pages, got %d+%d", len(first), len(second))
	}
	if first[1].ID >= second[0].ID {
		t.Fatal("pages must be order-consistent and disjoint")
	}
}

func TestModelServicePayloadValidation(t *testing.T) {
	svc := NewModelService(newTestSessions(t))
	ctx := context.Background()

	cases := []ModelCreate{
		{Name: "", Device: domain.DeviceCPU},
		{Name: "this_name_is_far_too_long_for_a_model_x", Device: domain.DeviceCPU},
		{Name: "ok_name", Device: "tpu"},
	}
	for _, payload := range cases {
		if _, err := svc.Create(ctx, payload); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("payload %+v: expected ErrInvalidPayload, got %v", payload, err)
		}
	}
}

func TestModelServiceConcurrentDuplicateCreate(t *testing.T) {
	sm := newTestSessions(t)
	svc := NewModelService(sm)
	ctx := context.Background()

	var g errgroup.Group
	results := make([]error, 2)
	for i := range results {
		i := i
		g.Go(func() error {
			_, err := svc.Create(ctx, ModelCreate{Name: "raced", Device: domain.DeviceCPU})
			results[i] = err
			return nil
		})
	}
	_ = g.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		if !errors.Is(err, ErrRuleViolation) && !errors.Is(err, ErrConstraint) {
			t.Fatalf("loser must fail with rule violation or constraint error, got %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winner, got %d", successes)
	}
	if n := countModels(t, sm); n != 1 {
		t.Fatalf("expected exactly one persisted row, got %d", n)
	}
}
