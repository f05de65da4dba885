package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		EventsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_events_applied_total",
			Help: "The total number of scoring events that changed the match state.",
		}, []string{"kind"}),
		EventsIgnored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_events_ignored_total",
			Help: "The total number of scoring events that were not valid for the match state.",
		}, []string{"kind"}),
		BallsBowled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_balls_bowled_total",
			Help: "The total number of deliveries recorded, legal or not.",
		}),
		Wickets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_wickets_total",
			Help: "The total number of wickets recorded.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_matches_completed_total",
			Help: "The total number of matches that reached a result.",
		}),
		DispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cricket_dispatch_duration_seconds",
			Help:    "The time taken to apply a single event.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		StateSaveFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_state_save_failed_total",
			Help: "The total number of match state saves that failed.",
		}),
		LiveSyncFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_live_sync_failed_total",
			Help: "The total number of live match updates that failed to publish.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cricket_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.EventsApplied,
		s.EventsIgnored,
		s.BallsBowled,
		s.Wickets,
		s.MatchesCompleted,
		s.DispatchDuration,
		s.StateSaveFailed,
		s.LiveSyncFailed,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncEventApplied(kind string) {
	s.EventsApplied.WithLabelValues(kind).Inc()
}

func (s *Service) IncEventIgnored(kind string) {
	s.EventsIgnored.WithLabelValues(kind).Inc()
}

func (s *Service) IncBallsBowled() {
	s.BallsBowled.Inc()
}

func (s *Service) IncWickets() {
	s.Wickets.Inc()
}

func (s *Service) IncMatchesCompleted() {
	s.MatchesCompleted.Inc()
}

func (s *Service) ObserveDispatchDuration(duration float64) {
	s.DispatchDuration.Observe(duration)
}

func (s *Service) IncStateSaveFailed() {
	s.StateSaveFailed.Inc()
}

func (s *Service) IncLiveSyncFailed() {
	s.LiveSyncFailed.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
