package scoring

// Status represents the stage of the match state machine.
type Status string

const (
	StatusSetup        Status = "SETUP"
	StatusInProgress   Status = "IN_PROGRESS"
	StatusInningsBreak Status = "INNINGS_BREAK"
	StatusCompleted    Status = "COMPLETED"
)

// ExtraType classifies a delivery that is not a plain ball off the bat.
type ExtraType string

const (
	ExtraNone   ExtraType = "None"
	ExtraWide   ExtraType = "Wide"
	ExtraNoBall ExtraType = "NoBall"
	ExtraBye    ExtraType = "Bye"
	ExtraLegBye ExtraType = "LegBye"
)

// Valid reports whether e is one of the known extra types.
func (e ExtraType) Valid() bool {
	switch e {
	case ExtraNone, ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye:
		return true
	}
	return false
}

// WicketType is the mode of dismissal signalled with a delivery.
type WicketType string

const (
	WicketNone      WicketType = "None"
	WicketBowled    WicketType = "Bowled"
	WicketCaught    WicketType = "Caught"
	WicketLBW       WicketType = "LBW"
	WicketRunOut    WicketType = "RunOut"
	WicketStumped   WicketType = "Stumped"
	WicketHitWicket WicketType = "HitWicket"
)

// Valid reports whether w is one of the known wicket types.
func (w WicketType) Valid() bool {
	switch w {
	case WicketNone, WicketBowled, WicketCaught, WicketLBW, WicketRunOut, WicketStumped, WicketHitWicket:
		return true
	}
	return false
}

// creditsBowler reports whether a dismissal of this type counts in the bowler's wickets column.
func (w WicketType) creditsBowler() bool {
	switch w {
	case WicketBowled, WicketCaught, WicketLBW, WicketStumped, WicketHitWicket:
		return true
	}
	return false
}

// Side identifies which of the two configured teams bats first.
type Side string

const (
	SideTeamA Side = "TeamA"
	SideTeamB Side = "TeamB"
)

// MatchConfig is fixed once the match has started.
type MatchConfig struct {
	TeamAName    string `json:"team_a_name"`
	TeamBName    string `json:"team_b_name"`
	TotalOvers   int    `json:"total_overs"`
	BattingFirst Side   `json:"batting_first"`
}

// Player is anyone who has taken part in the match. The ID never changes, the name may.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Batsman holds one batter's figures for an innings.
type Batsman struct {
	Player
	Runs       int    `json:"runs"`
	BallsFaced int    `json:"balls_faced"`
	Fours      int    `json:"fours"`
	Sixes      int    `json:"sixes"`
	IsStriker  bool   `json:"is_striker"`
	IsOut      bool   `json:"is_out"`
	Dismissal  string `json:"dismissal,omitempty"`
}

// Bowler holds one bowler's figures for an innings.
// Overs is always derived from BallsBowled, see OversNotation.
type Bowler struct {
	Player
	Overs        float64 `json:"overs"`
	BallsBowled  int     `json:"balls_bowled"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Maidens      int     `json:"maidens"`
	Wides        int     `json:"wides"`
	NoBalls      int     `json:"no_balls"`
}

// BallEvent is the record of a single delivery.
type BallEvent struct {
	Runs        int        `json:"runs"`
	Extras      int        `json:"extras"`
	ExtraType   ExtraType  `json:"extra_type"`
	IsLegal     bool       `json:"is_legal"`
	Wicket      WicketType `json:"wicket"`
	BowlerID    string     `json:"bowler_id"`
	BatsmanID   string     `json:"batsman_id"`
	FielderName string     `json:"fielder_name,omitempty"`
}

// FallOfWicket records the team score when a batter was dismissed.
type FallOfWicket struct {
	Player    string  `json:"player"`
	Score     int     `json:"score"`
	Over      float64 `json:"over"`
	WicketNum int     `json:"wicket_num"`
}

// Extras are the innings' running extras counters.
type Extras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
}

// Total returns the sum of all extras.
func (e Extras) Total() int {
	return e.Wides + e.NoBalls + e.Byes + e.LegByes
}

// InningsSummary is the frozen record of the first innings, kept once the chase begins.
type InningsSummary struct {
	BattingTeam string         `json:"batting_team"`
	Batsmen     []Batsman      `json:"batsmen"`
	Bowlers     []Bowler       `json:"bowlers"`
	Total       int            `json:"total"`
	Wickets     int            `json:"wickets"`
	Overs       int            `json:"overs"`
	Balls       int            `json:"balls"`
	Extras      Extras         `json:"extras"`
	FOW         []FallOfWicket `json:"fow"`
}

// Award is the man-of-the-match result.
type Award struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

// MatchState is the whole state of a match. Values are never mutated in place once
// returned by the Engine, which is what makes the snapshots in PastStates safe to share.
type MatchState struct {
	Status      Status      `json:"status"`
	Config      MatchConfig `json:"config"`
	Innings     int         `json:"innings"`
	BattingTeam string      `json:"batting_team"`
	BowlingTeam string      `json:"bowling_team"`

	TotalRuns          int `json:"total_runs"`
	Wickets            int `json:"wickets"`
	Overs              int `json:"overs"`
	BallsInCurrentOver int `json:"balls_in_current_over"`
	// TargetRuns is zero until the second innings starts.
	TargetRuns int `json:"target_runs,omitempty"`

	CurrentBatsmen     []Batsman `json:"current_batsmen"`
	CurrentBowler      *Bowler   `json:"current_bowler,omitempty"`
	BattingTeamPlayers []Batsman `json:"batting_team_players"`
	BowlingTeamBowlers []Bowler  `json:"bowling_team_bowlers"`

	FirstInnings *InningsSummary `json:"first_innings,omitempty"`

	History []BallEvent    `json:"history"`
	FOW     []FallOfWicket `json:"fow"`
	Extras  Extras         `json:"extras"`

	AwaitingBowler  bool   `json:"awaiting_bowler"`
	AwaitingBatsman bool   `json:"awaiting_batsman"`
	IsFreeHit       bool   `json:"is_free_hit"`
	LastBowlerID    string `json:"last_bowler_id,omitempty"`
	// OverRunsConceded is what the current bowler has conceded in the over in progress.
	OverRunsConceded int `json:"over_runs_conceded"`

	ManOfTheMatch *Award `json:"man_of_the_match,omitempty"`

	PastStates []MatchState `json:"past_states,omitempty"`
}

// NewMatchState returns the idle state a fresh process or a restart begins from.
func NewMatchState() MatchState {
	return MatchState{
		Status:  StatusSetup,
		Innings: 1,
		Config: MatchConfig{
			BattingFirst: SideTeamA,
		},
		CurrentBatsmen:     []Batsman{},
		BattingTeamPlayers: []Batsman{},
		BowlingTeamBowlers: []Bowler{},
		History:            []BallEvent{},
		FOW:                []FallOfWicket{},
	}
}

// IsIdle reports whether no match has been started yet.
func (s MatchState) IsIdle() bool {
	return s.Status == StatusSetup && s.Innings == 1 && s.Config.TeamAName == "" && s.Config.TeamBName == ""
}

// Striker returns the on-crease batsman holding strike.
func (s MatchState) Striker() (Batsman, bool) {
	for _, b := range s.CurrentBatsmen {
		if b.IsStriker {
			return b, true
		}
	}
	return Batsman{}, false
}

// LegalBalls returns the legal deliveries bowled so far in the innings.
func (s MatchState) LegalBalls() int {
	return s.Overs*6 + s.BallsInCurrentOver
}
