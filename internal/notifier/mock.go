package notifier

import (
	"sync"

	"github.com/mauv0809/wicketkeeper/internal/scoring"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendInningsBreakFunc func(state scoring.MatchState, dryRun bool) error
	SendResultFunc       func(state scoring.MatchState, dryRun bool) error
	FormatScoreFunc      func(state scoring.MatchState) (any, error)

	// Call records
	SendInningsBreakCalls []scoring.MatchState
	SendResultCalls       []scoring.MatchState
	FormatScoreCalls      []scoring.MatchState
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendInningsBreakCalls = nil
	m.SendResultCalls = nil
	m.FormatScoreCalls = nil
}

func (m *Mock) SendInningsBreak(state scoring.MatchState, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendInningsBreakCalls = append(m.SendInningsBreakCalls, state)
	if m.SendInningsBreakFunc != nil {
		return m.SendInningsBreakFunc(state, dryRun)
	}
	return nil
}

func (m *Mock) SendResult(state scoring.MatchState, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultCalls = append(m.SendResultCalls, state)
	if m.SendResultFunc != nil {
		return m.SendResultFunc(state, dryRun)
	}
	return nil
}

func (m *Mock) FormatScore(state scoring.MatchState) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatScoreCalls = append(m.FormatScoreCalls, state)
	if m.FormatScoreFunc != nil {
		return m.FormatScoreFunc(state)
	}
	return nil, nil
}

// InningsBreaks returns how many innings-break notifications were sent.
func (m *Mock) InningsBreaks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendInningsBreakCalls)
}

// Results returns how many result notifications were sent.
func (m *Mock) Results() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendResultCalls)
}
