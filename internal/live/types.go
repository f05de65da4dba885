package live

import (
	"fmt"
	"time"

	"github.com/mauv0809/wicketkeeper/internal/scoring"
)

// Topic names the Pub/Sub topic a message is published to.
type Topic string

const (
	TopicMatchCreated Topic = "live-match-created"
	TopicMatchUpdated Topic = "live-match-updated"
)

// NewMatch is what a live match is created from.
type NewMatch struct {
	TeamA      string `msgpack:"team_a"`
	TeamB      string `msgpack:"team_b"`
	TotalOvers int    `msgpack:"total_overs"`
}

// MatchCreated is published when a live match is created.
type MatchCreated struct {
	ID         string    `msgpack:"id"`
	Key        string    `msgpack:"key"`
	TeamA      string    `msgpack:"team_a"`
	TeamB      string    `msgpack:"team_b"`
	TotalOvers int       `msgpack:"total_overs"`
	CreatedAt  time.Time `msgpack:"created_at"`
}

// Update is the score of a live match at one point in time.
type Update struct {
	MatchID     string         `msgpack:"match_id" json:"match_id"`
	Innings     int            `msgpack:"innings" json:"innings"`
	BattingTeam string         `msgpack:"batting_team" json:"batting_team"`
	Score       string         `msgpack:"score" json:"score"`
	Overs       float64        `msgpack:"overs" json:"overs"`
	Target      int            `msgpack:"target,omitempty" json:"target,omitempty"`
	Status      scoring.Status `msgpack:"status" json:"status"`
	Winner      string         `msgpack:"winner,omitempty" json:"winner,omitempty"`
	Result      string         `msgpack:"result,omitempty" json:"result,omitempty"`
	UpdatedAt   time.Time      `msgpack:"updated_at" json:"updated_at"`
}

// Balls is the number of legal balls bowled in the innings, decoded from Overs.
func (u Update) Balls() int {
	return scoring.BallsFromNotation(u.Overs)
}

// UpdateFromState builds the update for a live match from its current state.
func UpdateFromState(matchID string, s scoring.MatchState) Update {
	return Update{
		MatchID:     matchID,
		Innings:     s.Innings,
		BattingTeam: s.BattingTeam,
		Score:       fmt.Sprintf("%d/%d", s.TotalRuns, s.Wickets),
		Overs:       scoring.OversNotation(s.LegalBalls()),
		Target:      s.TargetRuns,
		Status:      s.Status,
		Winner:      scoring.Winner(s),
		Result:      scoring.ResultText(s),
	}
}
