package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// GooseDialect maps a configured driver name to a goose dialect
func GooseDialect(driver string) string {
	if driver == "postgres" {
		return "postgres"
	}
	return "sqlite3"
}

func setupGoose(driver string, migrationsFS fs.FS) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(GooseDialect(driver)); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return nil
}

// RunMigrations applies all pending migrations from the provided filesystem
func RunMigrations(ctx context.Context, db *sql.DB, driver string, migrationsFS fs.FS) error {
	if err := setupGoose(driver, migrationsFS); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// RollbackMigration reverts the most recent migration
func RollbackMigration(ctx context.Context, db *sql.DB, driver string, migrationsFS fs.FS) error {
	if err := setupGoose(driver, migrationsFS); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// MigrationStatus prints the applied state of every migration through the
// goose logger
func MigrationStatus(ctx context.Context, db *sql.DB, driver string, migrationsFS fs.FS) error {
	if err := setupGoose(driver, migrationsFS); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, ".")
}

// SchemaVersion returns the current migration version
func SchemaVersion(ctx context.Context, db *sql.DB, driver string, migrationsFS fs.FS) (int64, error) {
	if err := setupGoose(driver, migrationsFS); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
