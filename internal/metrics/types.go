package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	EventsApplied      *prometheus.CounterVec
	EventsIgnored      *prometheus.CounterVec
	BallsBowled        prometheus.Counter
	Wickets            prometheus.Counter
	MatchesCompleted   prometheus.Counter
	DispatchDuration   prometheus.Histogram
	StateSaveFailed    prometheus.Counter
	LiveSyncFailed     prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// Keys used with MetricsStore.
const (
	KeyMatchesStarted   = "matches_started"
	KeyMatchesCompleted = "matches_completed"
	KeyBallsBowled      = "balls_bowled"
	KeyWickets          = "wickets"
)
