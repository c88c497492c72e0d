package snapshots

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/common"
	"github.com/tenacious-integration/deskctl/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, rec models.Record, fetchedAt time.Time) error {
	if rec.IsNew {
		return fmt.Errorf("cache %s: unsaved document", rec.DocType)
	}

	payload, err := rec.Redacted().MarshalFields()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s/%s: %w", rec.DocType, rec.Name, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (doctype, name, payload, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(doctype, name) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, rec.DocType, rec.Name, payload, fetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s/%s: %w", rec.DocType, rec.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, doctype, name string) (*Snapshot, error) {
	var (
		payload   []byte
		fetchedAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM snapshots WHERE doctype = ? AND name = ?`, doctype, name).
		Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s/%s: %w", doctype, name, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s/%s: %w", doctype, name, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s/%s: %w", doctype, name, err)
	}

	return &Snapshot{Record: models.NewRecord(doctype, fields), FetchedAt: fetchedAt}, nil
}

// List returns the cached documents, most recently fetched first.
func (r *SQLiteRepository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT doctype, name, fetched_at FROM snapshots ORDER BY fetched_at DESC, doctype, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.DocType, &s.Name, &s.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, doctype, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE doctype = ? AND name = ?`, doctype, name)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s/%s: %w", doctype, name, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}
