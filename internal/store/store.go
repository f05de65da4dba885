package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
)

// The current match is a single row.
const currentMatchID = 1

type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// New creates a new Store backed by db.
func New(db *sql.DB) Store {
	return &store{
		db:  db,
		now: time.Now,
	}
}

func (s *store) Load(ctx context.Context) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		blob        []byte
		liveMatchID sql.NullString
	)
	err := s.db.QueryRowContext(ctx, "SELECT state, live_match_id FROM match_state WHERE id = ?", currentMatchID).Scan(&blob, &liveMatchID)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load match state: %w", err)
	}
	state, err := DecodeState(blob)
	if err != nil {
		return Record{}, err
	}
	return Record{State: state, LiveMatchID: liveMatchID.String}, nil
}

func (s *store) Save(ctx context.Context, record Record) error {
	blob, err := EncodeState(record.State)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_state (id, state, status, live_match_id, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			status = excluded.status,
			live_match_id = excluded.live_match_id,
			updated_at = excluded.updated_at;
	`, currentMatchID, blob, string(record.State.Status), nullable(record.LiveMatchID), s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save match state: %w", err)
	}
	log.Debug("Saved match state", "status", record.State.Status, "bytes", len(blob))
	return nil
}

func (s *store) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM match_state WHERE id = ?", currentMatchID); err != nil {
		return fmt.Errorf("failed to delete match state: %w", err)
	}
	return nil
}

// Archive stores a completed match under a fresh ID and a readable slug.
func (s *store) Archive(ctx context.Context, state scoring.MatchState, liveMatchID string) (ArchivedMatch, error) {
	blob, err := EncodeState(withoutHistory(state))
	if err != nil {
		return ArchivedMatch{}, err
	}

	completedAt := s.now().UTC()
	id := uuid.NewString()
	a := ArchivedMatch{
		ID:          id,
		Slug:        archiveSlug(state.Config, completedAt, id),
		TeamA:       state.Config.TeamAName,
		TeamB:       state.Config.TeamBName,
		Result:      scoring.ResultText(state),
		Winner:      scoring.Winner(state),
		LiveMatchID: liveMatchID,
		CompletedAt: completedAt,
	}
	if state.ManOfTheMatch != nil {
		a.ManOfTheMatch = state.ManOfTheMatch.Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO archived_matches (id, slug, team_a, team_b, result, winner, man_of_the_match, live_match_id, state, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Slug, a.TeamA, a.TeamB, a.Result, nullable(a.Winner), nullable(a.ManOfTheMatch), nullable(a.LiveMatchID), blob, completedAt.Unix())
	if err != nil {
		return ArchivedMatch{}, fmt.Errorf("failed to archive match: %w", err)
	}
	log.Info("Archived match", "slug", a.Slug, "result", a.Result)
	return a, nil
}

// ListArchived returns the most recently completed matches first, without their state.
func (s *store) ListArchived(ctx context.Context, limit int) ([]ArchivedMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, team_a, team_b, result, winner, man_of_the_match, live_match_id, completed_at
		FROM archived_matches
		ORDER BY completed_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived matches: %w", err)
	}
	defer rows.Close()

	matches := make([]ArchivedMatch, 0)
	for rows.Next() {
		a, err := scanArchived(rows, nil)
		if err != nil {
			log.Error("Failed to scan archived match row", "error", err)
			continue
		}
		matches = append(matches, a)
	}
	return matches, rows.Err()
}

// GetArchived returns one archived match together with its final state.
func (s *store) GetArchived(ctx context.Context, slug string) (ArchivedMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob []byte
	row := s.db.QueryRowContext(ctx, `
		SELECT id, slug, team_a, team_b, result, winner, man_of_the_match, live_match_id, completed_at, state
		FROM archived_matches
		WHERE slug = ?
	`, slug)
	a, err := scanArchived(row, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return ArchivedMatch{}, ErrNotFound
	}
	if err != nil {
		return ArchivedMatch{}, fmt.Errorf("failed to get archived match %s: %w", slug, err)
	}
	state, err := DecodeState(blob)
	if err != nil {
		return ArchivedMatch{}, err
	}
	a.State = &state
	return a, nil
}

// scanArchived reads one archived_matches row. When blob is non-nil the state column is expected last.
func scanArchived(scanner interface{ Scan(...any) error }, blob *[]byte) (ArchivedMatch, error) {
	var (
		a                         ArchivedMatch
		winner, motm, liveMatchID sql.NullString
		completedAt               int64
	)
	dest := []any{&a.ID, &a.Slug, &a.TeamA, &a.TeamB, &a.Result, &winner, &motm, &liveMatchID, &completedAt}
	if blob != nil {
		dest = append(dest, blob)
	}
	if err := scanner.Scan(dest...); err != nil {
		return ArchivedMatch{}, err
	}
	a.Winner = winner.String
	a.ManOfTheMatch = motm.String
	a.LiveMatchID = liveMatchID.String
	a.CompletedAt = time.Unix(completedAt, 0).UTC()
	return a, nil
}

func archiveSlug(cfg scoring.MatchConfig, completedAt time.Time, id string) string {
	return slug.Make(fmt.Sprintf("%s vs %s %s %s", cfg.TeamAName, cfg.TeamBName, completedAt.Format("2006-01-02"), id[:8]))
}

// withoutHistory drops the undo stack, which has no meaning once a match is archived.
func withoutHistory(state scoring.MatchState) scoring.MatchState {
	state.PastStates = nil
	return state
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
