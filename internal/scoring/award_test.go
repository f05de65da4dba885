package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBattingPoints(t *testing.T) {
	tests := []struct {
		name     string
		batsman  Batsman
		expected int
	}{
		{"half century", Batsman{Runs: 52, BallsFaced: 40, Fours: 6, Sixes: 1}, 85},
		{"quick thirty", Batsman{Runs: 30, BallsFaced: 10, Fours: 3, Sixes: 2}, 30 + 3 + 4 + 10 + 15 + 25},
		{"strike rate exactly 150 earns nothing", Batsman{Runs: 15, BallsFaced: 10}, 15},
		{"too few balls for strike rate", Batsman{Runs: 18, BallsFaced: 3, Sixes: 3}, 24},
		{"century", Batsman{Runs: 100, BallsFaced: 100}, 100 + 10 + 25 + 50},
		{"duck", Batsman{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BattingPoints(tt.batsman))
		})
	}
}

func TestBowlingPoints(t *testing.T) {
	tests := []struct {
		name     string
		bowler   Bowler
		expected int
	}{
		{"five for cheap", Bowler{Wickets: 5, BallsBowled: 24, RunsConceded: 16}, 125 + 30 + 60 + 25},
		{"economy exactly five", Bowler{Wickets: 5, BallsBowled: 24, RunsConceded: 20}, 125 + 30 + 60 + 15},
		{"expensive", Bowler{Wickets: 1, BallsBowled: 24, RunsConceded: 40}, 25},
		{"one over is not enough for economy", Bowler{Wickets: 0, BallsBowled: 6, RunsConceded: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BowlingPoints(tt.bowler))
		})
	}
}

func TestManOfTheMatch(t *testing.T) {
	t.Run("nobody to choose from", func(t *testing.T) {
		assert.Equal(t, NoAward, ManOfTheMatch(nil, nil))
	})

	t.Run("bowler beats batsman", func(t *testing.T) {
		batsmen := []Batsman{{Player: Player{ID: "a", Name: "Ann"}, Runs: 40, BallsFaced: 35}}
		bowlers := []Bowler{{Player: Player{ID: "b", Name: "Ben"}, Wickets: 4, BallsBowled: 24, RunsConceded: 18}}

		award := ManOfTheMatch(batsmen, bowlers)
		assert.Equal(t, Award{PlayerID: "b", Name: "Ben", Reason: "4 Wickets (18 runs)"}, award)
	})

	t.Run("ties go to the first seen", func(t *testing.T) {
		batsmen := []Batsman{
			{Player: Player{ID: "a", Name: "Ann"}, Runs: 25, BallsFaced: 30},
			{Player: Player{ID: "c", Name: "Cal"}, Runs: 25, BallsFaced: 30},
		}
		bowlers := []Bowler{{Player: Player{ID: "b", Name: "Ben"}, Wickets: 1, BallsBowled: 6}}

		award := ManOfTheMatch(batsmen, bowlers)
		assert.Equal(t, "Ann", award.Name)
		assert.Equal(t, "25 Runs (30 balls)", award.Reason)
	})

	t.Run("zero points still names someone", func(t *testing.T) {
		award := ManOfTheMatch([]Batsman{{Player: Player{ID: "a", Name: "Ann"}}}, nil)
		assert.Equal(t, "a", award.PlayerID)
	})
}
