package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/wicketkeeper/internal/inngest"
	"github.com/mauv0809/wicketkeeper/internal/live"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/mauv0809/wicketkeeper/internal/store"
)

const defaultIOTimeout = 10 * time.Second

// Options configures a Session. Every collaborator except the store and metrics is optional.
type Options struct {
	Live        live.Client
	Notifier    notifier.Notifier
	Completions inngest.CompletionSender
	Tallies     metrics.MetricsStore
	DryRun      bool
	// IOTimeout bounds each background write. Defaults to 10s.
	IOTimeout time.Duration
}

type dryRunKey struct{}

// WithDryRun marks ctx so that events dispatched with it announce nothing and archive nothing.
func WithDryRun(ctx context.Context, dryRun bool) context.Context {
	return context.WithValue(ctx, dryRunKey{}, dryRun)
}

// IsDryRun reports whether ctx was marked by WithDryRun.
func IsDryRun(ctx context.Context) bool {
	dryRun, ok := ctx.Value(dryRunKey{}).(bool)
	return ok && dryRun
}

// persistJob is either a save of record or, when remove is set, a delete.
type persistJob struct {
	record store.Record
	remove bool
}

// Session owns the current match. Events are applied one at a time; persistence,
// live sync and notifications happen afterwards in the background and never
// change the outcome of an event.
type Session struct {
	mu          sync.Mutex
	engine      *scoring.Engine
	state       scoring.MatchState
	liveMatchID string
	// match changes on every StartMatch and Restart so a late live id can tell it is stale.
	match uint64

	store   store.Store
	metrics metrics.Metrics
	opts    Options

	persist   *latest[persistJob]
	push      *latest[live.Update]
	tasks     sync.WaitGroup
	closeOnce sync.Once
}

// New creates a Session starting from the idle state. Call Start to restore a persisted match.
func New(engine *scoring.Engine, st store.Store, m metrics.Metrics, opts Options) *Session {
	if opts.IOTimeout <= 0 {
		opts.IOTimeout = defaultIOTimeout
	}
	s := &Session{
		engine:  engine,
		state:   scoring.NewMatchState(),
		store:   st,
		metrics: m,
		opts:    opts,
	}
	s.persist = newLatest(s.runPersist)
	s.push = newLatest(s.runPush)
	return s
}

// Start restores the persisted match. A missing or unreadable record leaves the idle state in place.
func (s *Session) Start(ctx context.Context) {
	record, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info("No saved match, starting idle")
		return
	case err != nil:
		log.Error("Failed to restore saved match, starting idle", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = record.State
	s.liveMatchID = record.LiveMatchID
	log.Info("Restored saved match", "status", record.State.Status, "innings", record.State.Innings, "score", record.State.TotalRuns, "live", record.LiveMatchID != "")
}

// State returns the current match state.
func (s *Session) State() scoring.MatchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LiveMatchID returns the live feed ID of the current match, or "".
func (s *Session) LiveMatchID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveMatchID
}

// Dispatch applies ev to the current match and returns the resulting state and
// whether ev changed anything.
func (s *Session) Dispatch(ctx context.Context, ev scoring.Event) (scoring.MatchState, bool) {
	began := time.Now()
	kind := string(ev.Kind())

	s.mu.Lock()
	prev := s.state
	next, changed := s.engine.Apply(prev, ev)
	if !changed {
		s.mu.Unlock()
		s.metrics.IncEventIgnored(kind)
		log.Debug("Event ignored", "event", kind, "status", prev.Status)
		return prev, false
	}
	s.state = next

	_, restart := ev.(scoring.Restart)
	start, starting := ev.(scoring.StartMatch)
	if starting || restart {
		s.liveMatchID = ""
		s.match++
	}
	goLive := starting && start.Live && s.opts.Live != nil
	match := s.match
	liveMatchID := s.liveMatchID

	// Queued under the lock so background writes follow the order events were applied.
	if restart {
		s.persist.submit(persistJob{remove: true})
	} else {
		s.persist.submit(persistJob{record: store.Record{State: next, LiveMatchID: liveMatchID}})
	}
	if liveMatchID != "" {
		s.push.submit(live.UpdateFromState(liveMatchID, next))
	}
	s.mu.Unlock()

	if goLive {
		liveMatchID = s.attachLiveMatch(ctx, match, next.Config)
	}

	s.record(kind, prev, next)
	s.announce(prev, next, liveMatchID, s.opts.DryRun || IsDryRun(ctx))

	s.metrics.ObserveDispatchDuration(time.Since(began).Seconds())
	log.Info("Event applied", "event", kind, "status", next.Status, "score", next.TotalRuns, "wickets", next.Wickets, "overs", scoring.OversNotation(next.LegalBalls()))
	return next, true
}

// Close waits for background work to finish. Dispatching after Close is not allowed.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.persist.close()
		s.push.close()
		s.tasks.Wait()
		if s.opts.Live != nil {
			if err := s.opts.Live.Close(); err != nil {
				log.Error("Failed to close live client", "error", err)
			}
		}
	})
}

// attachLiveMatch creates the live record for match without holding the lock, then
// attaches it unless a Restart or another StartMatch came first. It returns the attached id or "".
func (s *Session) attachLiveMatch(ctx context.Context, match uint64, cfg scoring.MatchConfig) string {
	id := s.createLiveMatch(ctx, cfg)
	if id == "" {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.match != match {
		log.Warn("Match replaced while its live record was created, leaving it unused", "live_match_id", id)
		return ""
	}
	s.liveMatchID = id
	// Events applied meanwhile were saved without the id.
	s.persist.submit(persistJob{record: store.Record{State: s.state, LiveMatchID: id}})
	s.push.submit(live.UpdateFromState(id, s.state))
	return id
}

func (s *Session) createLiveMatch(ctx context.Context, cfg scoring.MatchConfig) string {
	ctx, cancel := context.WithTimeout(ctx, s.opts.IOTimeout)
	defer cancel()

	id, err := s.opts.Live.CreateMatch(ctx, live.NewMatch{
		TeamA:      cfg.TeamAName,
		TeamB:      cfg.TeamBName,
		TotalOvers: cfg.TotalOvers,
	})
	if err != nil {
		s.metrics.IncLiveSyncFailed()
		log.Error("Failed to create live match, continuing offline", "error", err)
		return ""
	}
	return id
}

// record updates the counters for an applied event.
func (s *Session) record(kind string, prev, next scoring.MatchState) {
	s.metrics.IncEventApplied(kind)

	switch kind {
	case string(scoring.EventStartMatch):
		s.tally(metrics.KeyMatchesStarted)
	case string(scoring.EventBowlBall):
		s.metrics.IncBallsBowled()
		s.tally(metrics.KeyBallsBowled)
		if next.Wickets > prev.Wickets {
			s.metrics.IncWickets()
			s.tally(metrics.KeyWickets)
		}
	}
}

func (s *Session) tally(key string) {
	if s.opts.Tallies == nil {
		return
	}
	s.goTask(func() { s.opts.Tallies.Increment(key) })
}

// announce sends the notifications due when a match reaches a break or a result.
func (s *Session) announce(prev, next scoring.MatchState, liveMatchID string, dryRun bool) {
	if prev.Status != scoring.StatusInningsBreak && next.Status == scoring.StatusInningsBreak && s.opts.Notifier != nil {
		s.goTask(func() {
			if err := s.opts.Notifier.SendInningsBreak(next, dryRun); err != nil {
				log.Error("Failed to send innings break notification", "error", err)
			}
		})
	}

	if prev.Status == scoring.StatusCompleted || next.Status != scoring.StatusCompleted {
		return
	}
	s.metrics.IncMatchesCompleted()
	log.Info("Match completed", "result", scoring.ResultText(next))
	if s.opts.Completions == nil {
		return
	}
	data := inngest.NewMatchCompleted(next, liveMatchID)
	data.DryRun = dryRun
	s.goTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.IOTimeout)
		defer cancel()
		if err := s.opts.Completions.SendMatchCompleted(ctx, data); err != nil {
			log.Error("Failed to process completed match", "error", err)
		}
	})
}

func (s *Session) goTask(fn func()) {
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		fn()
	}()
}

func (s *Session) runPersist(job persistJob) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.IOTimeout)
	defer cancel()

	var err error
	if job.remove {
		err = s.store.Delete(ctx)
	} else {
		err = s.store.Save(ctx, job.record)
	}
	if err != nil {
		s.metrics.IncStateSaveFailed()
		log.Error("Failed to persist match state", "error", err, "delete", job.remove)
	}
}

func (s *Session) runPush(update live.Update) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.IOTimeout)
	defer cancel()

	if err := s.opts.Live.PushUpdate(ctx, update); err != nil {
		s.metrics.IncLiveSyncFailed()
		log.Error("Failed to push live update", "error", err, "match_id", update.MatchID)
	}
}
