package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/talkincode/mlregistry/internal/domain"
)

// validate is the shared payload validator. The custom "finite" rule rejects
// NaN and infinity on metric values at the boundary, before any session is
// opened; the storage layer never sees a non-finite number.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	must(v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func checkPayload(p interface{}) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// Payload is the shape contract every create/update payload satisfies.
// Services validate payloads before opening a unit of work.
type Payload interface {
	Validate() error
}

// ModelCreate carries all required fields for registering a model.
type ModelCreate struct {
	Name   string            `json:"name" validate:"required,min=1,max=32"`
	Device domain.DeviceType `json:"device" validate:"required,oneof=cpu cuda"`
}

func (p ModelCreate) Validate() error { return checkPayload(p) }

// ModelUpdate carries only the mutable model fields. Name is the immutable
// business identifier and is deliberately absent.
type ModelUpdate struct {
	Device domain.DeviceType `json:"device" validate:"required,oneof=cpu cuda"`
}

func (p ModelUpdate) Validate() error { return checkPayload(p) }

// MetricCreate carries all required fields for recording a metric.
type MetricCreate struct {
	ModelID int64   `json:"model_id,string" validate:"required,gt=0"`
	Name    string  `json:"name" validate:"required,min=1,max=32"`
	Value   float64 `json:"value" validate:"finite"`
}

func (p MetricCreate) Validate() error { return checkPayload(p) }

// MetricUpdate carries only the metric value; the (model_id, name) identity
// is immutable.
type MetricUpdate struct {
	Value float64 `json:"value" validate:"finite"`
}

func (p MetricUpdate) Validate() error { return checkPayload(p) }

// ModelView is the flat, detached read representation of a model. It is safe
// to serialize after the originating session is closed.
type ModelView struct {
	ID        int64             `json:"id,string"`
	Name      string            `json:"name"`
	Device    domain.DeviceType `json:"device"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func newModelView(rec *domain.MLModel) ModelView {
	return ModelView{
		ID:        rec.ID,
		Name:      rec.Name,
		Device:    rec.Device,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// MetricView is the flat, detached read representation of a metric.
type MetricView struct {
	ID        int64     `json:"id,string"`
	ModelID   int64     `json:"model_id,string"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newMetricView(rec *domain.MLMetric) MetricView {
	return MetricView{
		ID:        rec.ID,
		ModelID:   rec.ModelID,
		Name:      rec.Name,
		Value:     rec.Value,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
