package scoring

// EventKind identifies the input events the state machine accepts.
type EventKind string

const (
	EventStartMatch        EventKind = "start_match"
	EventSetOpeningPlayers EventKind = "set_opening_players"
	EventBowlBall          EventKind = "bowl_ball"
	EventSelectNextBowler  EventKind = "select_next_bowler"
	EventSelectNextBatsman EventKind = "select_next_batsman"
	EventNextInnings       EventKind = "next_innings"
	EventRetireBatsman     EventKind = "retire_batsman"
	EventSwapBatsmen       EventKind = "swap_batsmen"
	EventUndo              EventKind = "undo"
	EventRestart           EventKind = "restart"
	EventUpdateBatsmanName EventKind = "update_batsman_name"
	EventUpdateBowlerName  EventKind = "update_bowler_name"
)

// Event is a single input to Engine.Apply.
type Event interface {
	Kind() EventKind
}

type StartMatch struct {
	TeamA        string `json:"team_a"`
	TeamB        string `json:"team_b"`
	TotalOvers   int    `json:"total_overs"`
	BattingFirst Side   `json:"batting_first"`
	// Live asks the session to mirror the match to the live collaborator. The engine ignores it.
	Live bool `json:"live"`
}

type SetOpeningPlayers struct {
	Striker    string `json:"striker"`
	NonStriker string `json:"non_striker"`
	Bowler     string `json:"bowler"`
}

type BowlBall struct {
	Runs        int        `json:"runs"`
	ExtraType   ExtraType  `json:"extra_type"`
	WicketType  WicketType `json:"wicket_type"`
	FielderName string     `json:"fielder_name,omitempty"`
}

type SelectNextBowler struct {
	Name       string `json:"name"`
	IsNew      bool   `json:"is_new"`
	ExistingID string `json:"existing_id,omitempty"`
}

type SelectNextBatsman struct {
	Name string `json:"name"`
}

type NextInnings struct{}

type RetireBatsman struct{}

type SwapBatsmen struct{}

type Undo struct{}

type Restart struct{}

type UpdateBatsmanName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UpdateBowlerName renames the current bowler.
type UpdateBowlerName struct {
	Name string `json:"name"`
}

func (StartMatch) Kind() EventKind        { return EventStartMatch }
func (SetOpeningPlayers) Kind() EventKind { return EventSetOpeningPlayers }
func (BowlBall) Kind() EventKind          { return EventBowlBall }
func (SelectNextBowler) Kind() EventKind  { return EventSelectNextBowler }
func (SelectNextBatsman) Kind() EventKind { return EventSelectNextBatsman }
func (NextInnings) Kind() EventKind       { return EventNextInnings }
func (RetireBatsman) Kind() EventKind     { return EventRetireBatsman }
func (SwapBatsmen) Kind() EventKind       { return EventSwapBatsmen }
func (Undo) Kind() EventKind              { return EventUndo }
func (Restart) Kind() EventKind           { return EventRestart }
func (UpdateBatsmanName) Kind() EventKind { return EventUpdateBatsmanName }
func (UpdateBowlerName) Kind() EventKind  { return EventUpdateBowlerName }

// validRuns are the values the scorer can enter for runs off a delivery.
func validRuns(runs int) bool {
	switch runs {
	case 0, 1, 2, 3, 4, 6:
		return true
	}
	return false
}
