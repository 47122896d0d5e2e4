package catalog

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/talkincode/mlregistry/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with foreign keys
// enabled and the catalog schema migrated. A single connection keeps the
// in-memory database alive and shared across sessions.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestSessions(t *testing.T) *SessionManager {
	t.Helper()
	return NewSessionManager(newTestDB(t))
}

// closeTimes compares two timestamps with enough slack to survive the
// driver's storage roundtrip.
func closeTimes(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d < time.Second
}
