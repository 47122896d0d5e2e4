package catalog

import "context"

// Hook signatures. Hooks run inside the operation's unit of work and may
// inspect related records through repositories bound to the same session.
// A non-nil error aborts the operation before (or after, for post hooks)
// the write and rolls the session back.
type (
	CreateHook[C any]        func(ctx context.Context, sess *Session, payload C) error
	RecordHook[T any]        func(ctx context.Context, sess *Session, rec *T) error
	UpdateHook[T any, U any] func(ctx context.Context, sess *Session, rec *T, payload U) error
)

// ServiceConfig wires a Service instance: the session source, the repository
// binding, the payload/record/view conversions and the optional hooks.
// Hooks are composed in rather than inherited, so each invariant stays an
// explicit, individually testable function.
type ServiceConfig[T any, C Payload, U Payload, V any] struct {
	Sessions   *SessionManager
	Bind       func(sess *Session) *Repository[T]
	FromCreate func(payload C) *T
	FromUpdate func(payload U) map[string]interface{}
	ToView     func(rec *T) V

	BeforeCreate CreateHook[C]
	AfterCreate  RecordHook[T]
	BeforeUpdate UpdateHook[T, U]
	AfterUpdate  RecordHook[T]
	BeforeDelete RecordHook[T]
	AfterDelete  RecordHook[T]
}

// Service orchestrates one unit of work per operation: open a session, bind
// the repository, run hooks around the CRUD primitive, commit writes, and
// convert the persisted record into a detached view before returning.
// Reads never commit; any failure rolls the session back and propagates.
type Service[T any, C Payload, U Payload, V any] struct {
	cfg ServiceConfig[T, C, U, V]
}

func NewService[T any, C Payload, U Payload, V any](cfg ServiceConfig[T, C, U, V]) *Service[T, C, U, V] {
	return &Service[T, C, U, V]{cfg: cfg}
}

// Create validates the payload, runs the pre-create hook, inserts the record
// and returns its fully hydrated view.
func (s *Service[T, C, U, V]) Create(ctx context.Context, payload C) (V, error) {
	var zero V
	if err := payload.Validate(); err != nil {
		return zero, err
	}

	sess, err := s.cfg.Sessions.Begin(ctx)
	if err != nil {
		return zero, err
	}
	defer sess.Close()

	repo := s.cfg.Bind(sess)
	if s.cfg.BeforeCreate != nil {
		if err := s.cfg.BeforeCreate(ctx, sess, payload); err != nil {
			return zero, err
		}
	}
	rec := s.cfg.FromCreate(payload)
	if err := repo.Create(ctx, rec); err != nil {
		return zero, err
	}
	if s.cfg.AfterCreate != nil {
		if err := s.cfg.AfterCreate(ctx, sess, rec); err != nil {
			return zero, err
		}
	}
	if err := sess.Commit(); err != nil {
		return zero, err
	}
	return s.cfg.ToView(rec), nil
}

// Get returns the view of the record with the given identity, or nil if
// absent. Read-only: no hooks, no commit.
func (s *Service[T, C, U, V]) Get(ctx context.Context, id int64) (*V, error) {
	var out *V
	err := s.cfg.Sessions.WithSession(ctx, func(sess *Session) error {
		rec, err := s.cfg.Bind(sess).Get(ctx, id)
		if err != nil || rec == nil {
			return err
		}
		view := s.cfg.ToView(rec)
		out = &view
		return nil
	})
	return out, err
}

// List returns one page of views in stable id order. Read-only.
func (s *Service[T, C, U, V]) List(ctx context.Context, skip, limit int) ([]V, error) {
	var out []V
	err := s.cfg.Sessions.WithSession(ctx, func(sess *Session) error {
		recs, err := s.cfg.Bind(sess).List(ctx, skip, limit)
		if err != nil {
			return err
		}
		out = make([]V, 0, len(recs))
		for _, rec := range recs {
			out = append(out, s.cfg.ToView(rec))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the mutable fields of the payload to an existing record.
// Returns (nil, nil) without invoking hooks when the target does not exist.
func (s *Service[T, C, U, V]) Update(ctx context.Context, id int64, payload U) (*V, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	sess, err := s.cfg.Sessions.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	repo := s.cfg.Bind(sess)
	rec, err := repo.Get(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	if s.cfg.BeforeUpdate != nil {
		if err := s.cfg.BeforeUpdate(ctx, sess, rec, payload); err != nil {
			return nil, err
		}
	}
	updated, err := repo.Update(ctx, id, s.cfg.FromUpdate(payload))
	if err != nil || updated == nil {
		return nil, err
	}
	if s.cfg.AfterUpdate != nil {
		if err := s.cfg.AfterUpdate(ctx, sess, updated); err != nil {
			return nil, err
		}
	}
	if err := sess.Commit(); err != nil {
		return nil, err
	}
	view := s.cfg.ToView(updated)
	return &view, nil
}

// Delete removes the record with the given identity, reporting whether one
// existed. Hooks are skipped when the target does not exist.
func (s *Service[T, C, U, V]) Delete(ctx context.Context, id int64) (bool, error) {
	sess, err := s.cfg.Sessions.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer sess.Close()

	repo := s.cfg.Bind(sess)
	rec, err := repo.Get(ctx, id)
	if err != nil || rec == nil {
		return false, err
	}
	if s.cfg.BeforeDelete != nil {
		if err := s.cfg.BeforeDelete(ctx, sess, rec); err != nil {
			return false, err
		}
	}
	ok, err := repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if s.cfg.AfterDelete != nil {
		if err := s.cfg.AfterDelete(ctx, sess, rec); err != nil {
			return false, err
		}
	}
	if err := sess.Commit(); err != nil {
		return false, err
	}
	return ok, nil
}
