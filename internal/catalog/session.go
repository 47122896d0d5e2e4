package catalog

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SessionManager hands out transactional units of work against a shared
// gorm engine. The engine is initialized once at startup and never
// reconfigured afterwards.
type SessionManager struct {
	db *gorm.DB
}

func NewSessionManager(db *gorm.DB) *SessionManager {
	return &SessionManager{db: db}
}

// Begin starts a new unit of work bound to ctx. The caller owns the commit
// decision; an unfinished session is rolled back by Close.
func (m *SessionManager) Begin(ctx context.Context) (*Session, error) {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "begin session")
	}
	return &Session{tx: tx}, nil
}

// WithSession runs fn inside a scoped session and releases it on all exit
// paths. It never commits on fn's behalf: fn must call sess.Commit to keep
// its writes, otherwise they are discarded when the scope ends.
func (m *SessionManager) WithSession(ctx context.Context, fn func(sess *Session) error) error {
	sess, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(sess)
}

// Session is one transactional unit of work. It is not safe for concurrent
// use and must not outlive the operation that opened it.
type Session struct {
	tx   *gorm.DB
	done bool
}

// DB exposes the transaction handle for repositories bound to this session.
func (s *Session) DB() *gorm.DB {
	return s.tx
}

// Commit finishes the unit of work, keeping its writes.
func (s *Session) Commit() error {
	if s.done {
		return errors.New("session already finished")
	}
	s.done = true
	if err := s.tx.Commit().Error; err != nil {
		return errors.Wrap(err, "commit session")
	}
	return nil
}

// Rollback discards the unit of work's pending writes.
func (s *Session) Rollback() error {
	if s.done {
		return errors.New("session already finished")
	}
	s.done = true
	if err := s.tx.Rollback().Error; err != nil {
		return errors.Wrap(err, "rollback session")
	}
	return nil
}

// Close releases the underlying connection exactly once. If the session was
// neither committed nor rolled back, pending writes are discarded.
func (s *Session) Close() {
	if s.done {
		return
	}
	s.done = true
	s.tx.Rollback()
}
