package notifier

import "github.com/mauv0809/wicketkeeper/internal/scoring"

// Notifier defines a high-level interface for sending notifications about match events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendInningsBreak announces the first-innings total and the target.
	SendInningsBreak(state scoring.MatchState, dryRun bool) error
	// SendResult announces the result and the man of the match.
	SendResult(state scoring.MatchState, dryRun bool) error
	// FormatScore renders the current score as a provider message, used to answer slash commands.
	FormatScore(state scoring.MatchState) (any, error)
}
