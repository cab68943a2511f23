package driven

import (
	"context"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
)

// ReadingStore defines the driven port for reading entry persistence. Entries
// are keyed by (username, title).
type ReadingStore interface {
	// ListByAccount returns every entry owned by username. Returns an empty
	// slice when the account has none.
	ListByAccount(ctx context.Context, username string) ([]model.ReadingEntry, error)

	// Get returns the entry for (username, title), or nil, nil if absent.
	Get(ctx context.Context, username, title string) (*model.ReadingEntry, error)

	// Upsert inserts the entry or, when (username, title) already exists,
	// replaces its type, total parts and current part. The write is durable
	// when Upsert returns. Returns ErrAccountNotFound if username is not
	// registered.
	Upsert(ctx context.Context, username string, entry model.ReadingEntry) error
}
