package scoring

import "fmt"

// Winner returns the winning team of a completed match, or "" for a tie or a match still in play.
func Winner(s MatchState) string {
	if s.Status != StatusCompleted || s.FirstInnings == nil {
		return ""
	}
	switch {
	case s.TargetRuns > 0 && s.TotalRuns >= s.TargetRuns:
		return s.BattingTeam
	case s.FirstInnings.Total > s.TotalRuns:
		return s.FirstInnings.BattingTeam
	}
	return ""
}

// ResultText describes how a completed match was decided.
func ResultText(s MatchState) string {
	if s.Status != StatusCompleted || s.FirstInnings == nil {
		return ""
	}
	switch {
	case s.TargetRuns > 0 && s.TotalRuns >= s.TargetRuns:
		return fmt.Sprintf("%s won by %s", s.BattingTeam, plural(10-s.Wickets, "wicket"))
	case s.FirstInnings.Total > s.TotalRuns:
		return fmt.Sprintf("%s won by %s", s.FirstInnings.BattingTeam, plural(s.FirstInnings.Total-s.TotalRuns, "run"))
	}
	return "Match Tied"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
