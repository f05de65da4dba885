package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultText(t *testing.T) {
	completed := func(innings1, innings2, target, wickets int) MatchState {
		s := NewMatchState()
		s.Status = StatusCompleted
		s.Innings = 2
		s.BattingTeam = "Tigers"
		s.BowlingTeam = "Lions"
		s.TotalRuns = innings2
		s.TargetRuns = target
		s.Wickets = wickets
		s.FirstInnings = &InningsSummary{BattingTeam: "Lions", Total: innings1}
		return s
	}

	tests := []struct {
		name   string
		state  MatchState
		text   string
		winner string
	}{
		{"chased with one wicket left", completed(100, 101, 101, 9), "Tigers won by 1 wicket", "Tigers"},
		{"chased easily", completed(100, 104, 101, 3), "Tigers won by 7 wickets", "Tigers"},
		{"defended by one run", completed(100, 99, 101, 10), "Lions won by 1 run", "Lions"},
		{"defended", completed(150, 90, 151, 10), "Lions won by 60 runs", "Lions"},
		{"tie", completed(100, 100, 101, 10), "Match Tied", ""},
		{"in progress", NewMatchState(), "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, ResultText(tt.state))
			assert.Equal(t, tt.winner, Winner(tt.state))
		})
	}
}

func TestBuildScorecard(t *testing.T) {
	e := NewEngineWithIDs(sequentialIDs())

	t.Run("idle", func(t *testing.T) {
		card := BuildScorecard(NewMatchState())
		assert.Nil(t, card.FirstInnings)
		assert.Nil(t, card.SecondInnings)
	})

	t.Run("first innings in progress", func(t *testing.T) {
		s := startedMatch(t, e, 5)
		s = bowl(t, e, s, 4, ExtraNone, WicketNone)
		s = bowl(t, e, s, 0, ExtraWide, WicketNone)
		s = bowl(t, e, s, 2, ExtraNone, WicketNone)

		card := BuildScorecard(s)
		require.NotNil(t, card.FirstInnings)
		assert.Nil(t, card.SecondInnings)
		assert.Equal(t, "Lions", card.FirstInnings.BattingTeam)
		assert.Equal(t, 7, card.FirstInnings.Total)
		assert.InDelta(t, 0.2, card.FirstInnings.Overs, 1e-9)
		assert.InDelta(t, 21.0, card.FirstInnings.RunRate, 1e-9)
		assert.Equal(t, 1, card.FirstInnings.ExtrasTotal)
		require.Len(t, card.FirstInnings.Batting, 2)
		assert.InDelta(t, 300.0, card.FirstInnings.Batting[0].StrikeRate, 1e-9)
		require.Len(t, card.FirstInnings.Bowling, 1)
		assert.InDelta(t, 21.0, card.FirstInnings.Bowling[0].Economy, 1e-9)
	})

	t.Run("second innings shows both", func(t *testing.T) {
		s := startedMatch(t, e, 2)
		for i := 0; i < 6; i++ {
			s = bowl(t, e, s, 1, ExtraNone, WicketNone)
		}
		s, ok := e.Apply(s, SelectNextBowler{Name: "Dev", IsNew: true})
		require.True(t, ok)
		for i := 0; i < 6; i++ {
			s = bowl(t, e, s, 0, ExtraNone, WicketNone)
		}
		s, ok = e.Apply(s, NextInnings{})
		require.True(t, ok)
		s, ok = e.Apply(s, SetOpeningPlayers{Striker: "Tom", NonStriker: "Uma", Bowler: "Vic"})
		require.True(t, ok)
		s = bowl(t, e, s, 1, ExtraNone, WicketNone)

		card := BuildScorecard(s)
		require.NotNil(t, card.FirstInnings)
		require.NotNil(t, card.SecondInnings)
		assert.Equal(t, 6, card.FirstInnings.Total)
		assert.InDelta(t, 2.0, card.FirstInnings.Overs, 1e-9)
		assert.Len(t, card.FirstInnings.Bowling, 2)
		assert.Equal(t, "Tigers", card.SecondInnings.BattingTeam)
		assert.Equal(t, 7, card.Target)
		// 6 needed from 11 balls.
		assert.InDelta(t, 36.0/11.0, card.RequiredRunRate, 1e-9)
	})
}
