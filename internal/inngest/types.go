package inngest

import (
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/mauv0809/wicketkeeper/internal/store"
)

// EventMatchCompleted is sent once per match when it reaches a result.
const EventMatchCompleted = "cricket/match.completed"

type client struct {
	inngestClient inngestgo.Client
	handler       *Handler
}

// MatchCompleted is the payload of EventMatchCompleted.
// State is sent without its undo stack.
type MatchCompleted struct {
	State       scoring.MatchState `json:"state"`
	LiveMatchID string             `json:"live_match_id,omitempty"`
	// DryRun skips the archive write and the Slack post for this match only.
	DryRun bool `json:"dry_run,omitempty"`
}

// Handler holds the steps run for a completed match.
type Handler struct {
	store    store.Store
	notifier notifier.Notifier
	tallies  metrics.MetricsStore
	dryRun   bool
}
