package store

import (
	"context"
	"sync"

	"github.com/mauv0809/wicketkeeper/internal/scoring"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	LoadFunc         func(ctx context.Context) (Record, error)
	SaveFunc         func(ctx context.Context, record Record) error
	DeleteFunc       func(ctx context.Context) error
	ArchiveFunc      func(ctx context.Context, state scoring.MatchState, liveMatchID string) (ArchivedMatch, error)
	ListArchivedFunc func(ctx context.Context, limit int) ([]ArchivedMatch, error)
	GetArchivedFunc  func(ctx context.Context, slug string) (ArchivedMatch, error)

	// Call records
	SaveCalls    []Record
	DeleteCalls  int
	ArchiveCalls []struct {
		State       scoring.MatchState
		LiveMatchID string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Load(ctx context.Context) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return Record{}, ErrNotFound
}

func (m *MockStore) Save(ctx context.Context, record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, record)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, record)
	}
	return nil
}

func (m *MockStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx)
	}
	return nil
}

func (m *MockStore) Archive(ctx context.Context, state scoring.MatchState, liveMatchID string) (ArchivedMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArchiveCalls = append(m.ArchiveCalls, struct {
		State       scoring.MatchState
		LiveMatchID string
	}{state, liveMatchID})
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, state, liveMatchID)
	}
	return ArchivedMatch{ID: "archived", Slug: "archived", Result: scoring.ResultText(state)}, nil
}

func (m *MockStore) ListArchived(ctx context.Context, limit int) ([]ArchivedMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListArchivedFunc != nil {
		return m.ListArchivedFunc(ctx, limit)
	}
	return []ArchivedMatch{}, nil
}

func (m *MockStore) GetArchived(ctx context.Context, slug string) (ArchivedMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetArchivedFunc != nil {
		return m.GetArchivedFunc(ctx, slug)
	}
	return ArchivedMatch{}, ErrNotFound
}

// Saved returns a copy of the records passed to Save so far.
func (m *MockStore) Saved() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.SaveCalls))
	copy(out, m.SaveCalls)
	return out
}

// Deleted returns how many times Delete was called.
func (m *MockStore) Deleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DeleteCalls
}

// Archived returns how many times Archive was called.
func (m *MockStore) Archived() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ArchiveCalls)
}
