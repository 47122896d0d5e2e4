package app

import (
	"github.com/pkg/errors"
	"github.com/talkincode/mlregistry/internal/domain"
	"go.uber.org/zap"
)

// MigrateDB creates or updates the catalog tables. Constraints (unique name,
// composite metric key, cascade foreign key) come from the domain tags.
func (a *Application) MigrateDB() error {
	if err := a.gormDB.AutoMigrate(domain.Tables...); err != nil {
		return errors.Wrap(err, "migrate database")
	}
	zap.L().Info("database migrated", zap.Int("tables", len(domain.Tables)))
	return nil
}

// DropAll removes the catalog tables. Used by tooling and tests only.
func (a *Application) DropAll() error {
	for i := len(domain.Tables) - 1; i >= 0; i-- {
		if err := a.gormDB.Migrator().DropTable(domain.Tables[i]); err != nil {
			return errors.Wrap(err, "drop tables")
		}
	}
	return nil
}
