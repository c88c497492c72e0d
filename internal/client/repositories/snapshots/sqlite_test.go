package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE snapshots (
  doctype    TEXT NOT NULL,
  name       TEXT NOT NULL,
  payload    BLOB NOT NULL,
  fetched_at TIMESTAMP NOT NULL,
  PRIMARY KEY (doctype, name)
);`)
	require.NoError(t, err)
	return db
}

func record(fields map[string]any) models.Record {
	return models.NewRecord(models.DocWhatsAppMessageLog, fields)
}

func TestPutAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := record(map[string]any{"name": "WA-1", "status": "Sent", "message_id": "wamid.1"})
	require.NoError(t, r.Put(ctx, rec, at))

	got, err := r.Get(ctx, models.DocWhatsAppMessageLog, "WA-1")
	require.NoError(t, err)
	assert.Equal(t, "WA-1", got.Record.Name)
	assert.False(t, got.Record.IsNew)
	assert.Equal(t, "Sent", got.Record.Text("status"))
	assert.True(t, at.Equal(got.FetchedAt), "fetched_at %v", got.FetchedAt)
}

func TestPut_MasksSecrets(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	rec := models.NewRecord(models.DocWhatsAppSettings, map[string]any{
		"name": models.DocWhatsAppSettings, "enabled": float64(1), "api_key": "EAAG-live-token",
	})
	require.NoError(t, r.Put(ctx, rec, time.Now()))

	var payload string
	require.NoError(t, db.QueryRow(`SELECT payload FROM snapshots`).Scan(&payload))
	assert.NotContains(t, payload, "EAAG-live-token")

	got, err := r.Get(ctx, models.DocWhatsAppSettings, models.DocWhatsAppSettings)
	require.NoError(t, err)
	assert.Equal(t, models.SecretMask, got.Record.Text("api_key"))
	assert.Equal(t, "EAAG-live-token", rec.Text("api_key"))
}

func TestPut_Replaces(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, record(map[string]any{"name": "WA-1", "status": "Queued"}), time.Now()))
	require.NoError(t, r.Put(ctx, record(map[string]any{"name": "WA-1", "status": "Delivered"}), time.Now()))

	got, err := r.Get(ctx, models.DocWhatsAppMessageLog, "WA-1")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", got.Record.Text("status"))

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPut_RejectsUnsaved(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	err := r.Put(context.Background(), record(map[string]any{"status": "Queued"}), time.Now())
	assert.Error(t, err)
}

func TestGet_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	_, err := r.Get(context.Background(), models.DocOneDrive, models.DocOneDrive)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.Put(ctx, models.NewRecord(models.DocOneDrive, map[string]any{"name": "One Drive"}), base))
	require.NoError(t, r.Put(ctx, record(map[string]any{"name": "WA-2"}), base.Add(time.Hour)))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "WA-2", list[0].Name)
	assert.Equal(t, models.DocOneDrive, list[1].DocType)
}

func TestDeleteAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, record(map[string]any{"name": "WA-1"}), time.Now()))
	require.NoError(t, r.Put(ctx, record(map[string]any{"name": "WA-2"}), time.Now()))

	require.NoError(t, r.Delete(ctx, models.DocWhatsAppMessageLog, "WA-1"))
	_, err := r.Get(ctx, models.DocWhatsAppMessageLog, "WA-1")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.Clear(ctx))
	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGet_CorruptPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"payload", "fetched_at"}).AddRow([]byte("{not json"), time.Now())
	mock.ExpectQuery(`SELECT payload, fetched_at FROM snapshots`).
		WithArgs(models.DocOneDrive, "One Drive").
		WillReturnRows(rows)

	_, err = NewSQLiteRepository(db).Get(context.Background(), models.DocOneDrive, "One Drive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode snapshot")
}

func TestErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLiteRepository(db)
	ctx := context.Background()
	down := errors.New("database is locked")

	mock.ExpectExec(`INSERT INTO snapshots`).WillReturnError(down)
	err = r.Put(ctx, record(map[string]any{"name": "WA-1"}), time.Now())
	require.ErrorIs(t, err, down)

	mock.ExpectQuery(`SELECT payload, fetched_at FROM snapshots`).WillReturnError(down)
	_, err = r.Get(ctx, models.DocWhatsAppMessageLog, "WA-1")
	require.ErrorIs(t, err, down)

	mock.ExpectQuery(`SELECT doctype, name, fetched_at FROM snapshots`).WillReturnError(down)
	_, err = r.List(ctx)
	require.ErrorIs(t, err, down)

	mock.ExpectExec(`DELETE FROM snapshots WHERE`).WillReturnError(down)
	require.ErrorIs(t, r.Delete(ctx, models.DocWhatsAppMessageLog, "WA-1"), down)

	mock.ExpectExec(`DELETE FROM snapshots`).WillReturnError(down)
	require.ErrorIs(t, r.Clear(ctx), down)

	require.NoError(t, mock.ExpectationsWereMet())
}
