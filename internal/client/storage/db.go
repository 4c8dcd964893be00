// Package storage opens the client's local sqlite database and wires the
// repositories on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dpavlenko/dectrack/internal/client/migrations"
	"github.com/dpavlenko/dectrack/internal/client/repositories/metadata"
)

// Repositories bundles everything backed by the local database.
type Repositories struct {
	Metadata metadata.Repository

	db *sql.DB
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.db.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens dsn, applies pending migrations and returns the
// repository set.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		db:       db,
	}, nil
}
