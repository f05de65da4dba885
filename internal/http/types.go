package http

import (
	"net/http"

	"github.com/mauv0809/wicketkeeper/internal/config"
	"github.com/mauv0809/wicketkeeper/internal/http/handlers"
	"github.com/mauv0809/wicketkeeper/internal/live"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/mauv0809/wicketkeeper/internal/store"
)

type Server struct {
	Session        handlers.MatchSession
	Store          store.Store
	Tallies        metrics.MetricsStore
	MetricsHandler http.Handler
	// Notifier answers Slack slash commands. Nil disables them.
	Notifier notifier.Notifier
	Board    *live.Board
	Cfg      config.Config
	// InngestHandler serves the durable workflow. Nil when Inngest is not configured.
	InngestHandler http.Handler
	Router         *http.ServeMux
}
