package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncEventApplied(kind string)
	IncEventIgnored(kind string)
	IncBallsBowled()
	IncWickets()
	IncMatchesCompleted()
	ObserveDispatchDuration(duration float64)
	IncStateSaveFailed()
	IncLiveSyncFailed()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore keeps all-time tallies in the database so they survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
