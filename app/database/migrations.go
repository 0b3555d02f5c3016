package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// ErrDirtySchema is returned when an earlier migration stopped halfway. The
// state file has to be repaired by hand before digests can be recorded.
var ErrDirtySchema = errors.New("state database schema is dirty")

// Schema describes the state database after migrations have run.
type Schema struct {
	Version uint
	Applied bool // at least one migration ran in this call
}

// RunMigrations brings the state database up to the embedded schema.
func RunMigrations(db *DB) (Schema, error) {
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return Schema{}, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return Schema{}, fmt.Errorf("failed to create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	var schema Schema
	err = m.Up()
	var dirty migrate.ErrDirty
	switch {
	case errors.As(err, &dirty):
		return Schema{Version: uint(dirty.Version)}, fmt.Errorf("%w: version %d in %s", ErrDirtySchema, dirty.Version, db.Path())
	case errors.Is(err, migrate.ErrNoChange):
	case err != nil:
		return Schema{}, fmt.Errorf("failed to run migrations: %w", err)
	default:
		schema.Applied = true
	}

	version, _, err := m.Version()
	if err != nil {
		return Schema{}, fmt.Errorf("failed to get migration version: %w", err)
	}
	schema.Version = version

	if schema.Applied {
		slog.Info("State database migrated", "path", db.Path(), "version", version)
	}
	return schema, nil
}
