// Package database opens the optional store behind theme preferences.
package database

import (
	"context"
	"fmt"
	"time"

	"titanic/internal/config"
	"titanic/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database and runs migrations. It returns nil, nil when no
// database is configured.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver := cfg.Driver()
	if driver == "" {
		return nil, nil
	}

	dsn := cfg.DSN()
	if driver == "sqlite" {
		dsn += "?mode=rwc&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// SQLite only supports one writer
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(time.Hour)
	}

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations (v%s): %w", runner.Version(), err)
	}
	return db, nil
}
