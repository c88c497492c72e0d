package snapshots

import (
	"context"
	"time"

	"github.com/tenacious-integration/deskctl/internal/client/models"
)

// Snapshot is a cached document plus the time it was fetched.
type Snapshot struct {
	Record    models.Record
	FetchedAt time.Time
}

// Summary identifies a cached document without its payload.
type Summary struct {
	DocType   string
	Name      string
	FetchedAt time.Time
}

// Repository keeps the last fetched copy of each document for offline use.
// Secret fields are masked before they are stored.
type Repository interface {
	// Put stores rec, replacing any earlier copy.
	Put(ctx context.Context, rec models.Record, fetchedAt time.Time) error

	// Get returns common.ErrorNotFound when nothing is cached.
	Get(ctx context.Context, doctype, name string) (*Snapshot, error)

	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, doctype, name string) error
	Clear(ctx context.Context) error
}
