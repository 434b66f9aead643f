package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// NewSQLiteConnection opens the file-backed store at path.
func NewSQLiteConnection(path string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := openSQLite(withPragmas(path), gormConfig)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Successfully connected to SQLite database at %s", path)
	return db, nil
}

// NewInMemorySQLite opens a private in-memory store, already migrated.
func NewInMemorySQLite(name string) (*gorm.DB, error) {
	dsn := withPragmas(fmt.Sprintf("file:%s?mode=memory&cache=shared", sanitize(name)))
	db, err := openSQLite(dsn, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func openSQLite(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// SQLite serialises writers; a single connection keeps transactions ordered.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

func sanitize(name string) string {
	return strings.NewReplacer("/", "_", " ", "_", "?", "_", "&", "_").Replace(name)
}
