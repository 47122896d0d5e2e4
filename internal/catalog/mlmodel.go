package catalog

import (
	"context"

	"github.com/talkincode/mlregistry/internal/domain"
)

// ModelRepository extends the generic repository with the unique-name lookup
// used for registration validation.
type ModelRepository struct {
	*Repository[domain.MLModel]
}

func NewModelRepository(sess *Session) *ModelRepository {
	return &ModelRepository{NewRepository[domain.MLModel](sess)}
}

// GetByName retrieves a model by its unique name, or (nil, nil) if absent.
// Used only for invariant checks, never for identity-based mutation.
func (r *ModelRepository) GetByName(ctx context.Context, name string) (*domain.MLModel, error) {
	var rec domain.MLModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyStorageErr(err, "get model by name")
	}
	return &rec, nil
}

// ModelService manages MLModel records. Its pre-create hook enforces global
// name uniqueness (case-sensitive exact match) inside the same transaction
// as the insert; the unique index remains the final arbiter under races.
type ModelService struct {
	*Service[domain.MLModel, ModelCreate, ModelUpdate, ModelView]
}

func NewModelService(sessions *SessionManager) *ModelService {
	return &ModelService{NewService(ServiceConfig[domain.MLModel, ModelCreate, ModelUpdate, ModelView]{
		Sessions: sessions,
		Bind: func(sess *Session) *Repository[domain.MLModel] {
			return NewRepository[domain.MLModel](sess)
		},
		FromCreate: func(p ModelCreate) *domain.MLModel {
			return &domain.MLModel{Name: p.Name, Device: p.Device}
		},
		FromUpdate: func(p ModelUpdate) map[string]interface{} {
			return map[string]interface{}{"device": p.Device}
		},
		ToView:       newModelView,
		BeforeCreate: validateModelCreate,
	})}
}

func validateModelCreate(ctx context.Context, sess *Session, payload ModelCreate) error {
	existing, err := NewModelRepository(sess).GetByName(ctx, payload.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return errorf(ErrDuplicateModelName, "ml model with name %q already exists", payload.Name)
	}
	return nil
}
