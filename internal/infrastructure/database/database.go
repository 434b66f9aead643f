package database

import (
	"fmt"

	"github.com/Syeddabbas07/chest-ray/config"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the relational store selected by cfg.Driver.
func NewConnection(cfg config.DBConfig, env string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel(env)),
		TranslateError: true,
	}

	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLiteConnection(cfg.Path, gormConfig)
	case "postgres":
		return NewPostgresConnection(cfg, gormConfig)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// Migrate creates or updates every table of the application.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Models returns every persisted entity in dependency order.
func Models() []any {
	return []any{
		&entity.Account{},
		&entity.HealthWorker{},
		&entity.Expert{},
		&entity.Admin{},
		&entity.Patient{},
		&entity.Xray{},
		&entity.Treatment{},
		&entity.Report{},
		&entity.AuditLog{},
	}
}

func logLevel(env string) logger.LogLevel {
	if env == "development" {
		return logger.Info
	}
	return logger.Warn
}
