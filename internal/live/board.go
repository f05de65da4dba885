package live

import (
	"sort"
	"sync"
)

// Board keeps the latest update of every live match it has been told about.
// It backs the read-only scoreboard fed by the Pub/Sub push subscription.
type Board struct {
	mu      sync.RWMutex
	matches map[string]Update
}

func NewBoard() *Board {
	return &Board{matches: make(map[string]Update)}
}

// Record stores u unless a newer update for the same match is already known.
// Pub/Sub does not guarantee ordering, so stale deliveries are dropped.
func (b *Board) Record(u Update) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if current, ok := b.matches[u.MatchID]; ok && !supersedes(u, current) {
		return false
	}
	b.matches[u.MatchID] = u
	return true
}

func (b *Board) Get(matchID string) (Update, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	u, ok := b.matches[matchID]
	return u, ok
}

// List returns every known match, most recently updated first.
func (b *Board) List() []Update {
	b.mu.RLock()
	out := make([]Update, 0, len(b.matches))
	for _, u := range b.matches {
		out = append(out, u)
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// supersedes orders two updates of one match by time, then by match progress when
// both carry the same timestamp.
func supersedes(u, current Update) bool {
	if !u.UpdatedAt.Equal(current.UpdatedAt) {
		return u.UpdatedAt.After(current.UpdatedAt)
	}
	if u.Innings != current.Innings {
		return u.Innings > current.Innings
	}
	return u.Balls() >= current.Balls()
}
