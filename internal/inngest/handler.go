package inngest

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/mauv0809/wicketkeeper/internal/store"
)

// NewHandler creates the completion steps. notifier may be nil when notifications are disabled.
func NewHandler(st store.Store, n notifier.Notifier, tallies metrics.MetricsStore, dryRun bool) *Handler {
	return &Handler{
		store:    st,
		notifier: n,
		tallies:  tallies,
		dryRun:   dryRun,
	}
}

// NewMatchCompleted builds the event payload for a completed match.
func NewMatchCompleted(state scoring.MatchState, liveMatchID string) MatchCompleted {
	state.PastStates = nil
	return MatchCompleted{State: state, LiveMatchID: liveMatchID}
}

// Archive stores the completed match.
func (h *Handler) Archive(ctx context.Context, data MatchCompleted) (store.ArchivedMatch, error) {
	if data.State.Status != scoring.StatusCompleted {
		return store.ArchivedMatch{}, fmt.Errorf("match is %s, not completed", data.State.Status)
	}
	if h.dryRun || data.DryRun {
		log.Info("[Dry Run] Would archive match", "result", scoring.ResultText(data.State))
		return store.ArchivedMatch{Result: scoring.ResultText(data.State)}, nil
	}
	return h.store.Archive(ctx, data.State, data.LiveMatchID)
}

// Notify posts the result card.
func (h *Handler) Notify(data MatchCompleted) error {
	if h.notifier == nil {
		log.Debug("Notifications disabled, skipping result")
		return nil
	}
	return h.notifier.SendResult(data.State, h.dryRun || data.DryRun)
}

// Tally bumps the all-time counters.
func (h *Handler) Tally() {
	if h.tallies != nil {
		h.tallies.Increment(metrics.KeyMatchesCompleted)
	}
}

// inline runs the completion steps in place, for when Inngest is not configured.
type inline struct {
	handler *Handler
}

// NewInline creates a CompletionSender that runs every step immediately.
func NewInline(h *Handler) CompletionSender {
	return &inline{handler: h}
}

func (i *inline) SendMatchCompleted(ctx context.Context, data MatchCompleted) error {
	archived, err := i.handler.Archive(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to archive match: %w", err)
	}
	log.Info("Match completed", "slug", archived.Slug, "result", archived.Result)
	i.handler.Tally()
	if err := i.handler.Notify(data); err != nil {
		return fmt.Errorf("failed to send result notification: %w", err)
	}
	return nil
}
