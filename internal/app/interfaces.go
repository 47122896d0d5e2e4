package app

import (
	"github.com/talkincode/mlregistry/config"
	"github.com/talkincode/mlregistry/internal/catalog"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SessionProvider provides unit-of-work access
type SessionProvider interface {
	Sessions() *catalog.SessionManager
}

// CatalogProvider provides the catalog services, blocking and async
type CatalogProvider interface {
	Models() *catalog.ModelService
	Metrics() *catalog.MetricService
	AsyncModels() *catalog.AsyncModelService
	AsyncMetrics() *catalog.AsyncMetricService
}

// AppContext combines all provider interfaces for full application context
// Consumers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SessionProvider
	CatalogProvider

	// Application lifecycle methods
	MigrateDB() error
	DropAll() error
	Release()
}
