package app

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/panjf2000/ants/v2"
	"github.com/talkincode/mlregistry/config"
	"github.com/talkincode/mlregistry/internal/catalog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sessions  *catalog.SessionManager
	pool      *ants.Pool

	models       *catalog.ModelService
	metrics      *catalog.MetricService
	asyncModels  *catalog.AsyncModelService
	asyncMetrics *catalog.AsyncMetricService
}

// Ensure Application implements all interfaces
var (
	_ DBProvider      = (*Application)(nil)
	_ ConfigProvider  = (*Application)(nil)
	_ SessionProvider = (*Application)(nil)
	_ CatalogProvider = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Sessions() *catalog.SessionManager {
	return a.sessions
}

func (a *Application) Models() *catalog.ModelService {
	return a.models
}

func (a *Application) Metrics() *catalog.MetricService {
	return a.metrics
}

func (a *Application) AsyncModels() *catalog.AsyncModelService {
	return a.asyncModels
}

func (a *Application) AsyncMetrics() *catalog.AsyncMetricService {
	return a.asyncMetrics
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
	a.wireCatalog()
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Configure output paths
	zapConfig.OutputPaths = []string{"stdout"}
	if cfg.Logger.FileEnable {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.Logger.Filename)
	}

	// Build logger with file rotation if enabled
	var appLogger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		appLogger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		appLogger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(appLogger)

	a.gormDB = a.openDatabase()

	pool, err := ants.NewPool(cfg.System.Workers)
	if err != nil {
		panic(fmt.Errorf("worker pool init: %w", err))
	}
	a.pool = pool

	a.wireCatalog()

	zap.L().Info("application initialized",
		zap.String("appid", cfg.System.Appid),
		zap.String("workdir", cfg.System.Workdir))
}

func (a *Application) openDatabase() *gorm.DB {
	cfg := a.appConfig.Database

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: cfg.DSN()}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		panic(fmt.Errorf("database connect: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.IdleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}

func (a *Application) wireCatalog() {
	a.sessions = catalog.NewSessionManager(a.gormDB)
	a.models = catalog.NewModelService(a.sessions)
	a.metrics = catalog.NewMetricService(a.sessions)
	if a.pool != nil {
		a.asyncModels = catalog.NewAsyncModelService(a.sessions, a.pool)
		a.asyncMetrics = catalog.NewAsyncMetricService(a.sessions, a.pool)
	}
}

func (a *Application) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
