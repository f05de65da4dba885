package scoring

import (
	"fmt"

	"github.com/google/uuid"
)

// Engine applies events to match states. It holds no state of its own apart from
// the ID source used when players enter the match.
type Engine struct {
	newID func() string
}

// NewEngine creates an Engine that assigns random UUIDs to new players.
func NewEngine() *Engine {
	return &Engine{newID: uuid.NewString}
}

// NewEngineWithIDs creates an Engine with a custom ID source. Used for deterministic tests.
func NewEngineWithIDs(newID func() string) *Engine {
	return &Engine{newID: newID}
}

// Apply computes the state that follows s when ev happens. The second return value is
// false when the event was not valid for s, in which case s is returned unchanged.
// s itself is never modified.
func (e *Engine) Apply(s MatchState, ev Event) (MatchState, bool) {
	var (
		next MatchState
		ok   bool
	)

	switch ev := ev.(type) {
	case StartMatch:
		return e.startMatch(s, ev)
	case Restart:
		return NewMatchState(), true
	case Undo:
		return undo(s)
	case SetOpeningPlayers:
		next, ok = e.setOpeningPlayers(s, ev)
	case BowlBall:
		next, ok = e.bowlBall(s, ev)
	case SelectNextBowler:
		next, ok = e.selectNextBowler(s, ev)
	case SelectNextBatsman:
		next, ok = e.selectNextBatsman(s, ev)
	case NextInnings:
		next, ok = nextInnings(s)
	case RetireBatsman:
		next, ok = retireBatsman(s)
	case SwapBatsmen:
		next, ok = swapBatsmen(s)
	case UpdateBatsmanName:
		next, ok = updateBatsmanName(s, ev)
	case UpdateBowlerName:
		next, ok = updateBowlerName(s, ev)
	default:
		return s, false
	}

	if !ok {
		return s, false
	}
	return withHistory(s, next), true
}

func (e *Engine) newBatsman(name string, striker bool) Batsman {
	return Batsman{Player: Player{ID: e.newID(), Name: name}, IsStriker: striker}
}

func (e *Engine) newBowler(name string) Bowler {
	return Bowler{Player: Player{ID: e.newID(), Name: name}}
}

func (e *Engine) startMatch(s MatchState, ev StartMatch) (MatchState, bool) {
	if !s.IsIdle() || ev.TeamA == "" || ev.TeamB == "" || ev.TotalOvers < 1 {
		return s, false
	}

	next := NewMatchState()
	switch ev.BattingFirst {
	case SideTeamA:
		next.BattingTeam, next.BowlingTeam = ev.TeamA, ev.TeamB
	case SideTeamB:
		next.BattingTeam, next.BowlingTeam = ev.TeamB, ev.TeamA
	default:
		return s, false
	}
	next.Config = MatchConfig{
		TeamAName:    ev.TeamA,
		TeamBName:    ev.TeamB,
		TotalOvers:   ev.TotalOvers,
		BattingFirst: ev.BattingFirst,
	}
	next.AwaitingBatsman = true
	return next, true
}

func (e *Engine) setOpeningPlayers(s MatchState, ev SetOpeningPlayers) (MatchState, bool) {
	if s.Status != StatusSetup || !s.AwaitingBatsman || s.Config.TeamAName == "" {
		return s, false
	}
	if ev.Striker == "" || ev.NonStriker == "" || ev.Bowler == "" {
		return s, false
	}

	striker := e.newBatsman(ev.Striker, true)
	nonStriker := e.newBatsman(ev.NonStriker, false)
	bowler := e.newBowler(ev.Bowler)

	next := s
	next.Status = StatusInProgress
	next.CurrentBatsmen = []Batsman{striker, nonStriker}
	next.BattingTeamPlayers = []Batsman{striker, nonStriker}
	next.CurrentBowler = &bowler
	next.BowlingTeamBowlers = []Bowler{bowler}
	next.AwaitingBatsman = false
	next.AwaitingBowler = false
	next.LastBowlerID = ""
	next.OverRunsConceded = 0
	return next, true
}

// delivery is how a ball counts towards the over, the extras ledger and the team total.
type delivery struct {
	legal  bool
	extras int
	total  int
}

func classify(extra ExtraType, runs int) delivery {
	switch extra {
	case ExtraWide:
		return delivery{legal: false, extras: 1 + runs, total: 1 + runs}
	case ExtraNoBall:
		return delivery{legal: false, extras: 1, total: runs + 1}
	case ExtraBye, ExtraLegBye:
		return delivery{legal: true, extras: runs, total: runs}
	default:
		return delivery{legal: true, total: runs}
	}
}

// resolveWicket downgrades dismissals that cannot happen on this kind of delivery.
func resolveWicket(w WicketType, extra ExtraType, freeHit bool) WicketType {
	if w == WicketNone {
		return w
	}
	switch {
	case freeHit || extra == ExtraNoBall:
		if w != WicketRunOut {
			return WicketNone
		}
	case extra == ExtraWide:
		if w != WicketStumped && w != WicketRunOut && w != WicketHitWicket {
			return WicketNone
		}
	}
	return w
}

func describeDismissal(w WicketType, fielder, bowler string) string {
	if fielder == "" {
		fielder = "?"
	}
	switch w {
	case WicketBowled:
		return "b " + bowler
	case WicketCaught:
		return fmt.Sprintf("c %s b %s", fielder, bowler)
	case WicketLBW:
		return "lbw b " + bowler
	case WicketRunOut:
		return "run out"
	case WicketStumped:
		return fmt.Sprintf("st %s b %s", fielder, bowler)
	case WicketHitWicket:
		return "hit wicket"
	}
	return string(w)
}

func (e *Engine) bowlBall(s MatchState, ev BowlBall) (MatchState, bool) {
	if s.Status != StatusInProgress || s.CurrentBowler == nil || s.AwaitingBowler || s.AwaitingBatsman {
		return s, false
	}
	if !validRuns(ev.Runs) || !ev.ExtraType.Valid() || !ev.WicketType.Valid() {
		return s, false
	}
	striker, ok := s.Striker()
	if !ok {
		return s, false
	}

	d := classify(ev.ExtraType, ev.Runs)

	batRuns := 0
	if ev.ExtraType != ExtraWide {
		striker.BallsFaced++
		if ev.ExtraType == ExtraNone || ev.ExtraType == ExtraNoBall {
			batRuns = ev.Runs
			striker.Runs += ev.Runs
			switch ev.Runs {
			case 4:
				striker.Fours++
			case 6:
				striker.Sixes++
			}
		}
	}

	bowler := *s.CurrentBowler
	if d.legal {
		bowler.BallsBowled++
	}
	conceded := 0
	if ev.ExtraType != ExtraBye && ev.ExtraType != ExtraLegBye {
		conceded = d.total
	}
	bowler.RunsConceded += conceded
	switch ev.ExtraType {
	case ExtraWide:
		bowler.Wides++
	case ExtraNoBall:
		bowler.NoBalls++
	}

	wicket := resolveWicket(ev.WicketType, ev.ExtraType, s.IsFreeHit)
	if wicket.creditsBowler() {
		bowler.Wickets++
	}
	bowler.Overs = OversNotation(bowler.BallsBowled)

	wickets := s.Wickets
	if wicket != WicketNone {
		wickets++
	}
	total := s.TotalRuns + d.total

	overs, balls := s.Overs, s.BallsInCurrentOver
	if d.legal {
		balls++
	}
	overComplete := false
	if balls >= 6 {
		overs++
		balls = 0
		overComplete = true
	}

	overRuns := s.OverRunsConceded + conceded
	if overComplete {
		if overRuns == 0 {
			bowler.Maidens++
		}
		overRuns = 0
	}

	// Odd runs cross the batsmen, the end of an over crosses them back.
	rotate := ev.Runs%2 != 0
	if overComplete {
		rotate = !rotate
	}
	batsmen := make([]Batsman, 0, len(s.CurrentBatsmen))
	for _, b := range s.CurrentBatsmen {
		if b.ID == striker.ID {
			b = striker
		}
		if wicket != WicketNone && b.ID == striker.ID {
			b.IsOut = true
			b.Dismissal = describeDismissal(wicket, ev.FielderName, bowler.Name)
		}
		if rotate {
			b.IsStriker = !b.IsStriker
		}
		batsmen = append(batsmen, b)
	}

	status := s.Status
	if s.Innings == 2 && s.TargetRuns > 0 && total >= s.TargetRuns {
		status = StatusCompleted
	} else if wickets >= 10 || (overComplete && overs >= s.Config.TotalOvers) {
		if s.Innings == 1 {
			status = StatusInningsBreak
		} else {
			status = StatusCompleted
		}
	}

	fow := s.FOW
	onCrease := batsmen
	if wicket != WicketNone {
		fow = appended(s.FOW, FallOfWicket{
			Player:    striker.Name,
			Score:     total,
			Over:      OversNotation(overs*6 + balls),
			WicketNum: wickets,
		})
		onCrease = make([]Batsman, 0, len(batsmen))
		for _, b := range batsmen {
			if !b.IsOut {
				onCrease = append(onCrease, b)
			}
		}
	}

	extras := s.Extras
	switch ev.ExtraType {
	case ExtraWide:
		extras.Wides += d.extras
	case ExtraNoBall:
		extras.NoBalls += d.extras
	case ExtraBye:
		extras.Byes += d.extras
	case ExtraLegBye:
		extras.LegByes += d.extras
	}

	next := s
	next.Status = status
	next.TotalRuns = total
	next.Wickets = wickets
	next.Overs = overs
	next.BallsInCurrentOver = balls
	next.CurrentBatsmen = onCrease
	next.BattingTeamPlayers = replaceBatsmen(s.BattingTeamPlayers, batsmen)
	next.BowlingTeamBowlers = replaceBowler(s.BowlingTeamBowlers, bowler)
	next.Extras = extras
	next.FOW = fow
	next.History = appended(s.History, BallEvent{
		Runs:        batRuns,
		Extras:      d.extras,
		ExtraType:   ev.ExtraType,
		IsLegal:     d.legal,
		Wicket:      wicket,
		BowlerID:    bowler.ID,
		BatsmanID:   striker.ID,
		FielderName: ev.FielderName,
	})
	next.OverRunsConceded = overRuns
	next.IsFreeHit = ev.ExtraType == ExtraNoBall || (s.IsFreeHit && !d.legal)
	next.AwaitingBowler = overComplete && status == StatusInProgress
	next.AwaitingBatsman = wicket != WicketNone && wickets < 10 && status == StatusInProgress

	if overComplete {
		// Nobody bowls until the next bowler is chosen.
		next.LastBowlerID = bowler.ID
		next.CurrentBowler = nil
	} else {
		next.CurrentBowler = &bowler
	}

	if status == StatusCompleted {
		award := awardFor(next)
		next.ManOfTheMatch = &award
	}
	return next, true
}

// awardFor chooses the man of the match from the winning side. A tie is scored
// like a defended total.
func awardFor(s MatchState) Award {
	var first InningsSummary
	if s.FirstInnings != nil {
		first = *s.FirstInnings
	}
	if s.Innings == 2 && s.TargetRuns > 0 && s.TotalRuns >= s.TargetRuns {
		return ManOfTheMatch(s.BattingTeamPlayers, first.Bowlers)
	}
	return ManOfTheMatch(first.Batsmen, s.BowlingTeamBowlers)
}

func (e *Engine) selectNextBowler(s MatchState, ev SelectNextBowler) (MatchState, bool) {
	if s.Status != StatusInProgress || !s.AwaitingBowler {
		return s, false
	}

	next := s
	if ev.IsNew {
		if ev.Name == "" {
			return s, false
		}
		bowler := e.newBowler(ev.Name)
		next.CurrentBowler = &bowler
		next.BowlingTeamBowlers = appended(s.BowlingTeamBowlers, bowler)
	} else {
		// The bowler who finished the last over cannot bowl the next one.
		if ev.ExistingID == "" || ev.ExistingID == s.LastBowlerID {
			return s, false
		}
		found := false
		for _, b := range s.BowlingTeamBowlers {
			if b.ID == ev.ExistingID {
				bowler := b
				next.CurrentBowler = &bowler
				found = true
				break
			}
		}
		if !found {
			return s, false
		}
	}
	next.AwaitingBowler = false
	return next, true
}

func (e *Engine) selectNextBatsman(s MatchState, ev SelectNextBatsman) (MatchState, bool) {
	if s.Status != StatusInProgress || !s.AwaitingBatsman || ev.Name == "" || len(s.CurrentBatsmen) >= 2 {
		return s, false
	}

	incoming := e.newBatsman(ev.Name, true)
	batsmen := make([]Batsman, 0, len(s.CurrentBatsmen)+1)
	for _, b := range s.CurrentBatsmen {
		b.IsStriker = false
		batsmen = append(batsmen, b)
	}
	batsmen = append(batsmen, incoming)

	next := s
	next.CurrentBatsmen = batsmen
	next.BattingTeamPlayers = appended(replaceBatsmen(s.BattingTeamPlayers, batsmen[:len(batsmen)-1]), incoming)
	next.AwaitingBatsman = false
	return next, true
}

func nextInnings(s MatchState) (MatchState, bool) {
	if s.Status != StatusInningsBreak {
		return s, false
	}

	next := s
	next.FirstInnings = &InningsSummary{
		BattingTeam: s.BattingTeam,
		Batsmen:     s.BattingTeamPlayers,
		Bowlers:     s.BowlingTeamBowlers,
		Total:       s.TotalRuns,
		Wickets:     s.Wickets,
		Overs:       s.Overs,
		Balls:       s.BallsInCurrentOver,
		Extras:      s.Extras,
		FOW:         s.FOW,
	}
	next.TargetRuns = s.TotalRuns + 1
	next.Innings = 2
	next.Status = StatusSetup
	next.BattingTeam, next.BowlingTeam = s.BowlingTeam, s.BattingTeam

	next.TotalRuns = 0
	next.Wickets = 0
	next.Overs = 0
	next.BallsInCurrentOver = 0
	next.CurrentBatsmen = []Batsman{}
	next.CurrentBowler = nil
	next.BattingTeamPlayers = []Batsman{}
	next.BowlingTeamBowlers = []Bowler{}
	next.History = []BallEvent{}
	next.FOW = []FallOfWicket{}
	next.Extras = Extras{}
	next.OverRunsConceded = 0
	next.IsFreeHit = false
	next.LastBowlerID = ""

	next.AwaitingBatsman = true
	next.AwaitingBowler = false
	return next, true
}

// retireBatsman takes the striker off without it counting as a wicket.
func retireBatsman(s MatchState) (MatchState, bool) {
	if s.Status != StatusInProgress || s.AwaitingBatsman {
		return s, false
	}
	striker, ok := s.Striker()
	if !ok {
		return s, false
	}
	striker.IsOut = true
	striker.Dismissal = "retired"

	onCrease := make([]Batsman, 0, len(s.CurrentBatsmen))
	for _, b := range s.CurrentBatsmen {
		if b.ID != striker.ID {
			onCrease = append(onCrease, b)
		}
	}

	next := s
	next.CurrentBatsmen = onCrease
	next.BattingTeamPlayers = replaceBatsmen(s.BattingTeamPlayers, []Batsman{striker})
	next.AwaitingBatsman = true
	return next, true
}

func swapBatsmen(s MatchState) (MatchState, bool) {
	if len(s.CurrentBatsmen) < 2 {
		return s, false
	}
	batsmen := make([]Batsman, 0, len(s.CurrentBatsmen))
	for _, b := range s.CurrentBatsmen {
		b.IsStriker = !b.IsStriker
		batsmen = append(batsmen, b)
	}
	next := s
	next.CurrentBatsmen = batsmen
	return next, true
}

func updateBatsmanName(s MatchState, ev UpdateBatsmanName) (MatchState, bool) {
	if ev.Name == "" {
		return s, false
	}
	found := false
	roster := make([]Batsman, 0, len(s.BattingTeamPlayers))
	for _, b := range s.BattingTeamPlayers {
		if b.ID == ev.ID {
			b.Name = ev.Name
			found = true
		}
		roster = append(roster, b)
	}
	if !found {
		return s, false
	}
	onCrease := make([]Batsman, 0, len(s.CurrentBatsmen))
	for _, b := range s.CurrentBatsmen {
		if b.ID == ev.ID {
			b.Name = ev.Name
		}
		onCrease = append(onCrease, b)
	}

	next := s
	next.BattingTeamPlayers = roster
	next.CurrentBatsmen = onCrease
	return next, true
}

func updateBowlerName(s MatchState, ev UpdateBowlerName) (MatchState, bool) {
	if s.CurrentBowler == nil || ev.Name == "" {
		return s, false
	}
	bowler := *s.CurrentBowler
	bowler.Name = ev.Name

	next := s
	next.CurrentBowler = &bowler
	next.BowlingTeamBowlers = replaceBowler(s.BowlingTeamBowlers, bowler)
	return next, true
}

// appended returns a new slice holding s followed by v. The backing array of s is never written.
func appended[T any](s []T, v ...T) []T {
	out := make([]T, 0, len(s)+len(v))
	out = append(out, s...)
	return append(out, v...)
}

// replaceBatsmen returns a copy of roster with entries swapped for updated ones of the same ID.
func replaceBatsmen(roster []Batsman, updated []Batsman) []Batsman {
	out := make([]Batsman, 0, len(roster))
	for _, p := range roster {
		for _, u := range updated {
			if u.ID == p.ID {
				p = u
				break
			}
		}
		out = append(out, p)
	}
	return out
}

func replaceBowler(roster []Bowler, updated Bowler) []Bowler {
	out := make([]Bowler, 0, len(roster))
	for _, b := range roster {
		if b.ID == updated.ID {
			b = updated
		}
		out = append(out, b)
	}
	return out
}
