package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/wicketkeeper/internal/config"
	"github.com/mauv0809/wicketkeeper/internal/database"
	server "github.com/mauv0809/wicketkeeper/internal/http"
	"github.com/mauv0809/wicketkeeper/internal/inngest"
	"github.com/mauv0809/wicketkeeper/internal/live"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/mauv0809/wicketkeeper/internal/notifier/slack"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/mauv0809/wicketkeeper/internal/session"
	"github.com/mauv0809/wicketkeeper/internal/store"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	cfg := config.Load()
	if cfg.LogFormat == "json" {
		log.SetFormatter(log.JSONFormatter)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	matchStore := store.New(db)
	tallies := metrics.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var slackNotifier notifier.Notifier
	if cfg.Slack.Enabled() {
		slackNotifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack is not configured, notifications are disabled")
	}

	var liveClient live.Client
	if cfg.ProjectID != "" {
		liveClient, err = live.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize live feed: %s", err)
		}
	} else {
		log.Warn("GCP_PROJECT is not set, live matches are disabled")
	}

	handler := inngest.NewHandler(matchStore, slackNotifier, tallies, cfg.DryRun)
	var (
		completions    inngest.CompletionSender = inngest.NewInline(handler)
		inngestHandler http.Handler
	)
	if cfg.Inngest.Enabled() {
		options := inngestgo.ClientOpts{
			AppID:      cfg.Inngest.AppID,
			SigningKey: &cfg.Inngest.SigningKey,
			EventKey:   &cfg.Inngest.EventKey,
			Dev:        &cfg.Inngest.Dev,
		}
		inngestProvider, err := inngestgo.NewClient(options)
		if err != nil {
			log.Fatalf("Failed to initialize inngest: %s", err)
		}
		inngestClient, err := inngest.New(inngestProvider, handler)
		if err != nil {
			log.Fatalf("Failed to register inngest functions: %s", err)
		}
		completions = inngestClient
		inngestHandler = inngestClient.Serve()
	} else {
		log.Info("Inngest is not configured, completed matches are processed in-process")
	}

	sess := session.New(scoring.NewEngine(), matchStore, metricsSvc, session.Options{
		Live:        liveClient,
		Notifier:    slackNotifier,
		Completions: completions,
		Tallies:     tallies,
		DryRun:      cfg.DryRun,
	})
	sess.Start(context.Background())

	s := server.NewServer(
		sess,
		matchStore,
		tallies,
		metricsHandler,
		slackNotifier,
		live.NewBoard(),
		cfg,
		inngestHandler,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port, "dry_run", cfg.DryRun)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			sess.Close()
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	// Flush the last save and any pending notifications before the database closes.
	sess.Close()
	log.Info("Server process shutting down")
}
