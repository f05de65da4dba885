package inngest

import (
	"context"
	"errors"
	"testing"

	"github.com/inngest/inngestgo"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/mauv0809/wicketkeeper/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedState() scoring.MatchState {
	s := scoring.NewMatchState()
	s.Config = scoring.MatchConfig{TeamAName: "Lions", TeamBName: "Tigers", TotalOvers: 5, BattingFirst: scoring.SideTeamA}
	s.Status = scoring.StatusCompleted
	s.Innings = 2
	s.BattingTeam = "Tigers"
	s.BowlingTeam = "Lions"
	s.TotalRuns = 30
	s.TargetRuns = 41
	s.FirstInnings = &scoring.InningsSummary{BattingTeam: "Lions", Total: 40}
	s.PastStates = []scoring.MatchState{scoring.NewMatchState()}
	return s
}

func TestNewMatchCompleted_DropsUndoStack(t *testing.T) {
	state := completedState()
	data := NewMatchCompleted(state, "live-1")
	assert.Nil(t, data.State.PastStates)
	assert.Len(t, state.PastStates, 1, "caller's state is untouched")
	assert.Equal(t, "live-1", data.LiveMatchID)
}

func TestInline_RunsEveryStep(t *testing.T) {
	st := store.NewMock()
	n := notifier.NewMock()
	tallies := metrics.NewStoreMock()
	sender := NewInline(NewHandler(st, n, tallies, false))

	err := sender.SendMatchCompleted(context.Background(), NewMatchCompleted(completedState(), "live-1"))
	require.NoError(t, err)

	require.Len(t, st.ArchiveCalls, 1)
	assert.Equal(t, "live-1", st.ArchiveCalls[0].LiveMatchID)
	assert.Equal(t, 1, n.Results())
	assert.Equal(t, 1, tallies.Get(metrics.KeyMatchesCompleted))
}

func TestInline_ArchiveFailureStopsNotification(t *testing.T) {
	st := store.NewMock()
	st.ArchiveFunc = func(ctx context.Context, state scoring.MatchState, liveMatchID string) (store.ArchivedMatch, error) {
		return store.ArchivedMatch{}, errors.New("disk full")
	}
	n := notifier.NewMock()
	sender := NewInline(NewHandler(st, n, nil, false))

	err := sender.SendMatchCompleted(context.Background(), NewMatchCompleted(completedState(), ""))
	require.Error(t, err)
	assert.Equal(t, 0, n.Results())
}

func TestHandler_Archive(t *testing.T) {
	t.Run("rejects a match still in play", func(t *testing.T) {
		st := store.NewMock()
		h := NewHandler(st, nil, nil, false)
		state := completedState()
		state.Status = scoring.StatusInProgress

		_, err := h.Archive(context.Background(), MatchCompleted{State: state})
		assert.Error(t, err)
		assert.Empty(t, st.ArchiveCalls)
	})

	t.Run("dry run does not write", func(t *testing.T) {
		st := store.NewMock()
		h := NewHandler(st, nil, nil, true)

		archived, err := h.Archive(context.Background(), MatchCompleted{State: completedState()})
		require.NoError(t, err)
		assert.Equal(t, "Lions won by 10 runs", archived.Result)
		assert.Empty(t, st.ArchiveCalls)
	})

	t.Run("dry run carried by the event", func(t *testing.T) {
		st := store.NewMock()
		n := notifier.NewMock()
		var dryRunSeen bool
		n.SendResultFunc = func(state scoring.MatchState, dryRun bool) error {
			dryRunSeen = dryRun
			return nil
		}
		h := NewHandler(st, n, nil, false)
		data := MatchCompleted{State: completedState(), DryRun: true}

		_, err := h.Archive(context.Background(), data)
		require.NoError(t, err)
		require.NoError(t, h.Notify(data))
		assert.Empty(t, st.ArchiveCalls)
		assert.True(t, dryRunSeen)
	})

	t.Run("notify without a notifier is a no-op", func(t *testing.T) {
		h := NewHandler(store.NewMock(), nil, nil, false)
		assert.NoError(t, h.Notify(MatchCompleted{State: completedState()}))
	})
}

func TestEventData(t *testing.T) {
	data, err := eventData(NewMatchCompleted(completedState(), "live-1"))
	require.NoError(t, err)
	assert.Equal(t, "live-1", data["live_match_id"])
	state, ok := data["state"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "COMPLETED", state["status"])
	assert.NotContains(t, state, "past_states")
}

func TestNew_RegistersFunction(t *testing.T) {
	dev := true
	provider, err := inngestgo.NewClient(inngestgo.ClientOpts{AppID: "wicketkeeper-test", Dev: &dev})
	require.NoError(t, err)

	c, err := New(provider, NewHandler(store.NewMock(), nil, nil, false))
	require.NoError(t, err)
	assert.NotNil(t, c.Serve())
}
