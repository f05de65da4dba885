package live

import (
	"context"
	"sync"
)

// Mock is a mock implementation of Client for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	CreateMatchFunc func(ctx context.Context, match NewMatch) (string, error)
	PushUpdateFunc  func(ctx context.Context, update Update) error

	// Call records
	CreateMatchCalls []NewMatch
	PushUpdateCalls  []Update
}

// NewMock creates a new mock Client.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) CreateMatch(ctx context.Context, match NewMatch) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(ctx, match)
	}
	return "live-match-id", nil
}

func (m *Mock) PushUpdate(ctx context.Context, update Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PushUpdateCalls = append(m.PushUpdateCalls, update)
	if m.PushUpdateFunc != nil {
		return m.PushUpdateFunc(ctx, update)
	}
	return nil
}

func (m *Mock) Close() error {
	return nil
}

// Updates returns a copy of the updates pushed so far.
func (m *Mock) Updates() []Update {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Update, len(m.PushUpdateCalls))
	copy(out, m.PushUpdateCalls)
	return out
}

// Created returns a copy of the matches created so far.
func (m *Mock) Created() []NewMatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NewMatch, len(m.CreateMatchCalls))
	copy(out, m.CreateMatchCalls)
	return out
}
