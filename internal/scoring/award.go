package scoring

import "fmt"

// NoAward is returned when there is nobody to choose from.
var NoAward = Award{PlayerID: "0", Name: "N/A", Reason: "N/A"}

// BattingPoints scores a batting performance for the man-of-the-match award.
func BattingPoints(b Batsman) int {
	pts := b.Runs + b.Fours + 2*b.Sixes
	if b.Runs >= 30 {
		pts += 10
	}
	if b.Runs >= 50 {
		pts += 25
	}
	if b.Runs >= 100 {
		pts += 50
	}
	if b.BallsFaced >= 10 {
		// Strike rate thresholds, compared without division.
		if b.Runs*100 > 150*b.BallsFaced {
			pts += 15
		}
		if b.Runs*100 > 200*b.BallsFaced {
			pts += 25
		}
	}
	return pts
}

// BowlingPoints scores a bowling performance for the man-of-the-match award.
func BowlingPoints(b Bowler) int {
	pts := 25 * b.Wickets
	if b.Wickets >= 3 {
		pts += 30
	}
	if b.Wickets >= 5 {
		pts += 60
	}
	if b.BallsBowled >= 12 {
		eco := Economy(b)
		if eco < 5 {
			pts += 25
		} else if eco < 7 {
			pts += 15
		}
	}
	return pts
}

// ManOfTheMatch picks the best performer from the winning side's batting and bowling.
// Batsmen are considered before bowlers and ties go to whoever was seen first.
func ManOfTheMatch(batsmen []Batsman, bowlers []Bowler) Award {
	best := NoAward
	maxPoints := -1

	for _, b := range batsmen {
		if pts := BattingPoints(b); pts > maxPoints {
			maxPoints = pts
			best = Award{PlayerID: b.ID, Name: b.Name, Reason: fmt.Sprintf("%d Runs (%d balls)", b.Runs, b.BallsFaced)}
		}
	}
	for _, b := range bowlers {
		if pts := BowlingPoints(b); pts > maxPoints {
			maxPoints = pts
			best = Award{PlayerID: b.ID, Name: b.Name, Reason: fmt.Sprintf("%d Wickets (%d runs)", b.Wickets, b.RunsConceded)}
		}
	}
	return best
}
