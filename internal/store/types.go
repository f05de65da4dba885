package store

import (
	"errors"
	"time"

	"github.com/mauv0809/wicketkeeper/internal/scoring"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// Record is the persisted current match.
type Record struct {
	State scoring.MatchState
	// LiveMatchID is set when the match is mirrored to the live feed.
	LiveMatchID string
}

// ArchivedMatch is a completed match kept after the scorer moved on.
type ArchivedMatch struct {
	ID            string              `json:"id"`
	Slug          string              `json:"slug"`
	TeamA         string              `json:"team_a"`
	TeamB         string              `json:"team_b"`
	Result        string              `json:"result"`
	Winner        string              `json:"winner,omitempty"`
	ManOfTheMatch string              `json:"man_of_the_match,omitempty"`
	LiveMatchID   string              `json:"live_match_id,omitempty"`
	CompletedAt   time.Time           `json:"completed_at"`
	State         *scoring.MatchState `json:"state,omitempty"`
}
