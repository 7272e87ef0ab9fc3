// Package db carries the SQL migrations for the session storage table.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const (
	MigrationsDir = "migrations"
	VersionTable  = "schema_migrations"
)

// Dialect maps a configured driver name to the goose dialect.
func Dialect(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "postgres", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// Migrate applies every pending migration, or rolls back the latest one.
func Migrate(ctx context.Context, conn *sql.DB, driver string, rollback bool) error {
	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(Migrations)
	goose.SetTableName(VersionTable)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if rollback {
		if err := goose.DownContext(ctx, conn, MigrationsDir); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		return nil
	}
	if err := goose.UpContext(ctx, conn, MigrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, conn *sql.DB, driver string) (int64, error) {
	dialect, err := Dialect(driver)
	if err != nil {
		return 0, err
	}
	goose.SetTableName(VersionTable)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("goose dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, conn)
}
