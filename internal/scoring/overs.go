package scoring

import "math"

// OversNotation converts a count of legal balls into cricket overs notation,
// where the tenths digit is a ball count: 7 balls is 1.1, not 1.1666.
func OversNotation(balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(balls/6) + float64(balls%6)/10
}

// BallsFromNotation is the inverse of OversNotation.
func BallsFromNotation(overs float64) int {
	if overs <= 0 {
		return 0
	}
	whole := math.Floor(overs)
	return int(whole)*6 + int(math.Round((overs-whole)*10))
}

// RunRate returns runs per six legal balls.
func RunRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) * 6 / float64(balls)
}

// StrikeRate returns runs per hundred balls faced.
func StrikeRate(b Batsman) float64 {
	if b.BallsFaced <= 0 {
		return 0
	}
	return float64(b.Runs) * 100 / float64(b.BallsFaced)
}

// Economy returns runs conceded per over, computed from legal balls.
func Economy(b Bowler) float64 {
	return RunRate(b.RunsConceded, b.BallsBowled)
}

// CurrentRunRate is the batting side's run rate for the innings in progress.
func CurrentRunRate(s MatchState) float64 {
	return RunRate(s.TotalRuns, s.LegalBalls())
}

// RequiredRunRate is the rate the chasing side needs over the balls remaining.
// It is zero outside a chase and when no balls remain.
func RequiredRunRate(s MatchState) float64 {
	if s.Innings != 2 || s.TargetRuns == 0 {
		return 0
	}
	remaining := s.Config.TotalOvers*6 - s.LegalBalls()
	need := s.TargetRuns - s.TotalRuns
	if remaining <= 0 || need <= 0 {
		return 0
	}
	return RunRate(need, remaining)
}
