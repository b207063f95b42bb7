package store

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/five82/tally/internal/apperr"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsTable = "tally_schema_migrations"

// applySchema brings the database up to the latest migration. The migrate
// instance is never closed because closing it would close db as well.
func applySchema(ctx context.Context, db *sqlx.DB) error {
	if err := ctx.Err(); err != nil {
		return apperr.Wrapf(apperr.Persistence, err, "apply schema")
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return apperr.Wrapf(apperr.Persistence, err, "load migrations")
	}
	defer src.Close()

	drv, err := sqlitemigrate.WithInstance(db.DB, &sqlitemigrate.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return apperr.Wrapf(apperr.Persistence, err, "prepare migrations")
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return apperr.Wrapf(apperr.Persistence, err, "prepare migrations")
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			select {
			case m.GracefulStop <- true:
			default:
			}
		case <-done:
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperr.Wrapf(apperr.Persistence, err, "apply schema")
	}
	return nil
}

// schemaVersion reports the applied migration version.
func schemaVersion(db *sqlx.DB) (uint, error) {
	var version uint
	err := db.Get(&version, "SELECT version FROM "+migrationsTable+" LIMIT 1")
	if err != nil {
		return 0, apperr.Wrapf(apperr.Persistence, err, "read schema version")
	}
	return version, nil
}
