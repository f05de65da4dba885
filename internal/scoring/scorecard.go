package scoring

// BattingLine is a batsman's row on the scorecard.
type BattingLine struct {
	Batsman
	StrikeRate float64 `json:"strike_rate"`
}

// BowlingLine is a bowler's row on the scorecard.
type BowlingLine struct {
	Bowler
	Economy float64 `json:"economy"`
}

// InningsCard is one innings of the scorecard.
type InningsCard struct {
	BattingTeam string         `json:"batting_team"`
	Total       int            `json:"total"`
	Wickets     int            `json:"wickets"`
	Overs       float64        `json:"overs"`
	RunRate     float64        `json:"run_rate"`
	Extras      Extras         `json:"extras"`
	ExtrasTotal int            `json:"extras_total"`
	Batting     []BattingLine  `json:"batting"`
	Bowling     []BowlingLine  `json:"bowling"`
	FOW         []FallOfWicket `json:"fow"`
}

// Scorecard is the read model rendered for both innings.
type Scorecard struct {
	TeamA           string       `json:"team_a"`
	TeamB           string       `json:"team_b"`
	Status          Status       `json:"status"`
	Target          int          `json:"target,omitempty"`
	RequiredRunRate float64      `json:"required_run_rate,omitempty"`
	FirstInnings    *InningsCard `json:"first_innings,omitempty"`
	SecondInnings   *InningsCard `json:"second_innings,omitempty"`
	Result          string       `json:"result,omitempty"`
	ManOfTheMatch   *Award       `json:"man_of_the_match,omitempty"`
}

// BuildScorecard derives the scorecard for s.
func BuildScorecard(s MatchState) Scorecard {
	card := Scorecard{
		TeamA:         s.Config.TeamAName,
		TeamB:         s.Config.TeamBName,
		Status:        s.Status,
		Target:        s.TargetRuns,
		Result:        ResultText(s),
		ManOfTheMatch: s.ManOfTheMatch,
	}
	if s.IsIdle() {
		return card
	}

	live := inningsCard(s.BattingTeam, s.BattingTeamPlayers, s.BowlingTeamBowlers,
		s.TotalRuns, s.Wickets, s.LegalBalls(), s.Extras, s.FOW)

	if s.Innings == 1 {
		card.FirstInnings = &live
		return card
	}
	if f := s.FirstInnings; f != nil {
		first := inningsCard(f.BattingTeam, f.Batsmen, f.Bowlers, f.Total, f.Wickets, f.Overs*6+f.Balls, f.Extras, f.FOW)
		card.FirstInnings = &first
	}
	card.SecondInnings = &live
	card.RequiredRunRate = RequiredRunRate(s)
	return card
}

func inningsCard(team string, batsmen []Batsman, bowlers []Bowler, total, wickets, balls int, extras Extras, fow []FallOfWicket) InningsCard {
	card := InningsCard{
		BattingTeam: team,
		Total:       total,
		Wickets:     wickets,
		Overs:       OversNotation(balls),
		RunRate:     RunRate(total, balls),
		Extras:      extras,
		ExtrasTotal: extras.Total(),
		Batting:     make([]BattingLine, 0, len(batsmen)),
		Bowling:     make([]BowlingLine, 0, len(bowlers)),
		FOW:         fow,
	}
	for _, b := range batsmen {
		card.Batting = append(card.Batting, BattingLine{Batsman: b, StrikeRate: StrikeRate(b)})
	}
	for _, b := range bowlers {
		card.Bowling = append(card.Bowling, BowlingLine{Bowler: b, Economy: Economy(b)})
	}
	return card
}
