package store

import (
	"context"

	"github.com/mauv0809/wicketkeeper/internal/scoring"
)

// Store persists the current match and the archive of completed ones.
type Store interface {
	// Load returns the persisted match, or ErrNotFound when there is none.
	Load(ctx context.Context) (Record, error)
	// Save replaces the persisted match.
	Save(ctx context.Context, record Record) error
	// Delete removes the persisted match. Deleting nothing is not an error.
	Delete(ctx context.Context) error
	Archive(ctx context.Context, state scoring.MatchState, liveMatchID string) (ArchivedMatch, error)
	ListArchived(ctx context.Context, limit int) ([]ArchivedMatch, error)
	GetArchived(ctx context.Context, slug string) (ArchivedMatch, error)
}
