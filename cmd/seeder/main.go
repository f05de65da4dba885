package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/wicketkeeper/internal/database"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/mauv0809/wicketkeeper/internal/store"
	"github.com/spf13/cobra"
)

var teams = []string{"Lions", "Tigers", "Falcons", "Sharks", "Wolves", "Hawks"}

var outcomes = []scoring.BowlBall{
	{Runs: 0, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketNone},
	{Runs: 0, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketNone},
	{Runs: 1, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketNone},
	{Runs: 1, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketNone},
	{Runs: 1, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketNone},
	{Runs: 2, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketNone},
	{Runs: 4, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketNone},
	{Runs: 6, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketNone},
	{Runs: 0, ExtraType: scoring.ExtraWide, WicketType: scoring.WicketNone},
	{Runs: 0, ExtraType: scoring.ExtraNoBall, WicketType: scoring.WicketNone},
	{Runs: 1, ExtraType: scoring.ExtraLegBye, WicketType: scoring.WicketNone},
	{Runs: 0, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketBowled},
	{Runs: 0, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketCaught, FielderName: "Sub"},
	{Runs: 1, ExtraType: scoring.ExtraNone, WicketType: scoring.WicketRunOut},
}

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken, migrationsDir string) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName = os.Getenv("DB_NAME")
	primaryURL = os.Getenv("TURSO_PRIMARY_URL")
	authToken = os.Getenv("TURSO_AUTH_TOKEN")
	if dbName == "" && primaryURL == "" {
		log.Fatalf("Error: Either DB_NAME or TURSO_PRIMARY_URL must be set.")
	}
	migrationsDir = os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}
	return dbName, primaryURL, authToken, migrationsDir
}

type options struct {
	matches int
	overs   int
	seed    int64
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "wicketkeeper-seeder",
		Short: "Archive randomly simulated matches",
		Long: `Plays whole matches through the scoring engine with random deliveries
and archives them, so the archive and stats endpoints have data to serve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.matches, "matches", 50, "number of completed matches to archive")
	cmd.Flags().IntVar(&opts.overs, "overs", 5, "overs per innings")
	cmd.Flags().Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "random seed")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Seeder failed: %s", err)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.overs <= 0 {
		return fmt.Errorf("overs must be positive, got %d", opts.overs)
	}
	log.Info("Starting database seeder...", "matches", opts.matches, "overs", opts.overs, "seed", opts.seed)
	dbName, primaryURL, authToken, migrationsDir := loadConfig()

	db, cleanup, err := database.InitDB(dbName, primaryURL, authToken, migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer cleanup()

	st := store.New(db)
	rng := rand.New(rand.NewSource(opts.seed))
	engine := scoring.NewEngine()
	startTime := time.Now()

	for i := 0; i < opts.matches; i++ {
		state, err := simulate(engine, rng, opts.overs)
		if err != nil {
			return fmt.Errorf("failed to simulate match %d: %w", i+1, err)
		}
		archived, err := st.Archive(ctx, state, "")
		if err != nil {
			return fmt.Errorf("failed to archive match %d: %w", i+1, err)
		}
		log.Debug("Archived match", "slug", archived.Slug, "result", archived.Result)
		if (i+1)%10 == 0 || i+1 == opts.matches {
			log.Info("Archived batch", "completed", i+1, "total", opts.matches)
		}
	}

	log.Info("Successfully archived all seeded matches.", "duration", time.Since(startTime))
	return nil
}

// simulate plays a whole match with random deliveries and returns the completed state.
func simulate(engine *scoring.Engine, rng *rand.Rand, overs int) (scoring.MatchState, error) {
	a := rng.Intn(len(teams))
	b := (a + 1 + rng.Intn(len(teams)-1)) % len(teams)
	side := scoring.SideTeamA
	if rng.Intn(2) == 1 {
		side = scoring.SideTeamB
	}

	s := scoring.NewMatchState()
	next, ok := engine.Apply(s, scoring.StartMatch{TeamA: teams[a], TeamB: teams[b], TotalOvers: overs, BattingFirst: side})
	if !ok {
		return s, fmt.Errorf("match did not start")
	}
	s = next

	// Every step either bowls a ball or resolves a prompt, so this bounds a full match generously.
	limit := overs * 6 * 2 * 4
	for step := 0; s.Status != scoring.StatusCompleted; step++ {
		if step > limit {
			return s, fmt.Errorf("match did not finish after %d steps", limit)
		}

		var ev scoring.Event
		switch {
		case s.Status == scoring.StatusInningsBreak:
			ev = scoring.NextInnings{}
		case s.Status == scoring.StatusSetup:
			ev = scoring.SetOpeningPlayers{
				Striker:    fmt.Sprintf("%s %d", s.BattingTeam, 1),
				NonStriker: fmt.Sprintf("%s %d", s.BattingTeam, 2),
				Bowler:     s.BowlingTeam + " Bowler 1",
			}
		case s.AwaitingBatsman:
			ev = scoring.SelectNextBatsman{Name: fmt.Sprintf("%s %d", s.BattingTeam, len(s.BattingTeamPlayers)+1)}
		case s.AwaitingBowler:
			ev = nextBowler(s, rng)
		default:
			ev = outcomes[rng.Intn(len(outcomes))]
		}

		next, ok := engine.Apply(s, ev)
		if !ok {
			return s, fmt.Errorf("%s rejected while %s", ev.Kind(), s.Status)
		}
		s = next
	}
	return s, nil
}

// nextBowler brings on a fresh bowler until five have bowled, then rotates the ones not just used.
func nextBowler(s scoring.MatchState, rng *rand.Rand) scoring.SelectNextBowler {
	const squad = 5
	if len(s.BowlingTeamBowlers) < squad {
		return scoring.SelectNextBowler{Name: fmt.Sprintf("%s Bowler %d", s.BowlingTeam, len(s.BowlingTeamBowlers)+1), IsNew: true}
	}
	var eligible []scoring.Bowler
	for _, b := range s.BowlingTeamBowlers {
		if b.ID != s.LastBowlerID {
			eligible = append(eligible, b)
		}
	}
	pick := eligible[rng.Intn(len(eligible))]
	return scoring.SelectNextBowler{Name: pick.Name, ExistingID: pick.ID}
}
