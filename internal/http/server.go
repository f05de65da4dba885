package http

import (
	"net/http"

	"github.com/mauv0809/wicketkeeper/internal/config"
	"github.com/mauv0809/wicketkeeper/internal/http/handlers"
	"github.com/mauv0809/wicketkeeper/internal/live"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/mauv0809/wicketkeeper/internal/store"
)

func NewServer(sess handlers.MatchSession, st store.Store, tallies metrics.MetricsStore, metricsHandler http.Handler, notifier notifier.Notifier, board *live.Board, cfg config.Config, inngestHandler http.Handler) *Server {
	server := &Server{
		Session:        sess,
		Store:          st,
		Tallies:        tallies,
		MetricsHandler: metricsHandler,
		Notifier:       notifier,
		Board:          board,
		Cfg:            cfg,
		InngestHandler: inngestHandler,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /state", Chain(handlers.StateHandler(s.Session), paramsMiddleware))
	s.Router.Handle("GET /scorecard", Chain(handlers.ScorecardHandler(s.Session), paramsMiddleware))
	s.Router.Handle("GET /archive", Chain(handlers.ListArchivedHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /archive/{slug}", Chain(handlers.GetArchivedHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(handlers.StatsHandler(s.Tallies), paramsMiddleware))

	s.Router.Handle("POST /match/start", Chain(handlers.EventHandler[scoring.StartMatch](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/openers", Chain(handlers.EventHandler[scoring.SetOpeningPlayers](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/ball", Chain(handlers.EventHandler[scoring.BowlBall](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/bowler", Chain(handlers.EventHandler[scoring.SelectNextBowler](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/batsman", Chain(handlers.EventHandler[scoring.SelectNextBatsman](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/next-innings", Chain(handlers.EventHandler[scoring.NextInnings](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/retire", Chain(handlers.EventHandler[scoring.RetireBatsman](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/swap", Chain(handlers.EventHandler[scoring.SwapBatsmen](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/undo", Chain(handlers.EventHandler[scoring.Undo](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/restart", Chain(handlers.EventHandler[scoring.Restart](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/batsman/name", Chain(handlers.EventHandler[scoring.UpdateBatsmanName](s.Session), paramsMiddleware))
	s.Router.Handle("POST /match/bowler/name", Chain(handlers.EventHandler[scoring.UpdateBowlerName](s.Session), paramsMiddleware))

	s.Router.Handle("POST /pubsub/live-updates", Chain(handlers.LiveUpdatePushHandler(s.Board), paramsMiddleware))
	s.Router.Handle("GET /live", Chain(handlers.ListLiveHandler(s.Board), paramsMiddleware))
	s.Router.Handle("GET /live/{id}", Chain(handlers.GetLiveHandler(s.Board), paramsMiddleware))

	if s.Notifier != nil {
		s.Router.Handle("POST /slack/command/score", Chain(handlers.ScoreCommandHandler(s.Session, s.Notifier, s.Cfg.Slack.SigningSecret), paramsMiddleware))
	}
	if s.InngestHandler != nil {
		s.Router.Handle("/api/inngest", s.InngestHandler)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
