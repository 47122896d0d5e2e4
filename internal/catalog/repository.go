package catalog

import (
	"context"

	"gorm.io/gorm"
)

// DefaultPageSize caps List pages when the caller passes limit <= 0.
const DefaultPageSize = 100

// Repository implements the CRUD primitives for one record type against an
// injected session. Commit and rollback remain the caller's responsibility;
// the repository only issues statements.
type Repository[T any] struct {
	db *gorm.DB
}

// NewRepository binds a repository to the given session.
func NewRepository[T any](sess *Session) *Repository[T] {
	return &Repository[T]{db: sess.DB()}
}

// Create inserts rec and hydrates storage-generated fields (identity,
// timestamps) before returning. Constraint rejections surface as
// ErrConstraint; they are the backstop beneath the service-level hooks.
func (r *Repository[T]) Create(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return classifyStorageErr(err, "create record")
	}
	return nil
}

// Get returns the record with the given identity, or (nil, nil) if absent.
func (r *Repository[T]) Get(ctx context.Context, id int64) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyStorageErr(err, "get record")
	}
	return &rec, nil
}

// List returns one page of records in stable id order. skip offsets from the
// start, limit caps the page size.
func (r *Repository[T]) List(ctx context.Context, skip, limit int) ([]*T, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	var recs []*T
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, classifyStorageErr(err, "list records")
	}
	return recs, nil
}

// Update applies only the fields present in the given mapping, leaving the
// rest untouched, then re-reads the row so storage-managed fields
// (updated_at) are current. Returns (nil, nil) if id does not exist.
func (r *Repository[T]) Update(ctx context.Context, id int64, fields map[string]interface{}) (*T, error) {
	rec, err := r.Get(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(rec).Updates(fields).Error; err != nil {
			return nil, classifyStorageErr(err, "update record")
		}
	}
	return r.Get(ctx, id)
}

// Delete loads then removes the record, reporting whether one existed.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	rec, err := r.Get(ctx, id)
	if err != nil || rec == nil {
		return false, err
	}
	if err := r.db.WithContext(ctx).Delete(rec).Error; err != nil {
		return false, classifyStorageErr(err, "delete record")
	}
	return true, nil
}
