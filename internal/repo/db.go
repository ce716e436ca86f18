// Package repo implements the data persistence layer for submissions,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and PostgreSQL, plus schema initialization.
package repo

import (
	"os"
	"path/filepath"
	"strings"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-form-backend/internal/config"
	"github.com/tbourn/go-form-backend/internal/domain"
)

// Open connects to the store selected by cfg: PostgreSQL when DatabaseURL is
// set, a local SQLite file otherwise. The returned handle carries a bounded
// connection pool; every request borrows a pooled connection for the duration
// of a single statement and releases it when the statement finishes.
func Open(cfg config.StorageConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = openPostgres(cfg.DatabaseURL, cfg.SSLMode)
	} else {
		db, err = openSQLite(cfg.DBPath)
	}
	if err != nil {
		return nil, err
	}

	// Pool bounds and timeouts
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}

// openSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func openSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	return db, nil
}

// openPostgres opens a PostgreSQL connection from a libpq-style DSN or URL.
func openPostgres(dsn, sslmode string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(withSSLMode(dsn, sslmode)), &gorm.Config{})
}

// withSSLMode appends sslmode to a DSN or URL unless the DSN already carries
// one, so an explicit value inside DATABASE_URL always wins.
func withSSLMode(dsn, sslmode string) string {
	if sslmode == "" || strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.Contains(dsn, "://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "sslmode=" + sslmode
	}
	return dsn + " sslmode=" + sslmode
}

// EnableTracing registers the GORM OpenTelemetry plugin on db so every
// statement becomes a child span of the active request span. Call only when
// tracing is enabled; registration is idempotent per handle but each query
// then pays the instrumentation overhead.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate idempotently ensures the submissions table exists. It is safe
// to call on every startup; a failure leaves the handle usable so the caller
// can log and continue (requests will surface storage errors instead).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Submission{})
}
