package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/tenacious-integration/deskctl/internal/client/migrations"
	"github.com/tenacious-integration/deskctl/internal/client/repositories/metadata"
	"github.com/tenacious-integration/deskctl/internal/client/repositories/snapshots"
	"github.com/tenacious-integration/deskctl/internal/filex"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB        *sql.DB
	Metadata  metadata.Repository
	Snapshots snapshots.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		DB:        db,
		Metadata:  metadata.NewSQLiteRepository(db),
		Snapshots: snapshots.NewSQLiteRepository(db),
	}
}

// RunMigrations applies the embedded migrations. It is safe to run on an
// up-to-date database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the cache at dsn and brings its schema up to date.
// For a plain file path the parent directory is created first.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if isFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite has a single writer and callbacks write concurrently.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
