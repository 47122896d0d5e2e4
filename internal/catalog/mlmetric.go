package catalog

import (
	"context"

	"github.com/talkincode/mlregistry/internal/domain"
)

// MetricRepository extends the generic repository with the composite-key
// lookup used for uniqueness validation.
type MetricRepository struct {
	*Repository[domain.MLMetric]
}

func NewMetricRepository(sess *Session) *MetricRepository {
	return &MetricRepository{NewRepository[domain.MLMetric](sess)}
}

// GetByModelAndName retrieves a metric by its (model_id, name) identity, or
// (nil, nil) if absent. Used only for invariant checks.
func (r *MetricRepository) GetByModelAndName(ctx context.Context, modelID int64, name string) (*domain.MLMetric, error) {
	var rec domain.MLMetric
	err := r.db.WithContext(ctx).
		Where("model_id = ? AND name = ?", modelID, name).
		First(&rec).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyStorageErr(err, "get metric by model and name")
	}
	return &rec, nil
}

// MetricService manages MLMetric records. Its pre-create hook enforces
// referential integrity (the parent model must exist) and composite-key
// uniqueness, both against the same open transaction as the insert. The
// foreign key and unique index remain the final arbiter under races.
type MetricService struct {
	*Service[domain.MLMetric, MetricCreate, MetricUpdate, MetricView]
}

func NewMetricService(sessions *SessionManager) *MetricService {
	return &MetricService{NewService(ServiceConfig[domain.MLMetric, MetricCreate, MetricUpdate, MetricView]{
		Sessions: sessions,
		Bind: func(sess *Session) *Repository[domain.MLMetric] {
			return NewRepository[domain.MLMetric](sess)
		},
		FromCreate: func(p MetricCreate) *domain.MLMetric {
			return &domain.MLMetric{ModelID: p.ModelID, Name: p.Name, Value: p.Value}
		},
		FromUpdate: func(p MetricUpdate) map[string]interface{} {
			return map[string]interface{}{"value": p.Value}
		},
		ToView:       newMetricView,
		BeforeCreate: validateMetricCreate,
	})}
}

func validateMetricCreate(ctx context.Context, sess *Session, payload MetricCreate) error {
	parent, err := NewModelRepository(sess).Get(ctx, payload.ModelID)
	if err != nil {
		return err
	}
	if parent == nil {
		return errorf(ErrModelMissing, "ml model with id %d does not exist", payload.ModelID)
	}

	existing, err := NewMetricRepository(sess).GetByModelAndName(ctx, payload.ModelID, payload.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return errorf(ErrDuplicateMetric, "metric %q already exists for model %d", payload.Name, payload.ModelID)
	}
	return nil
}
