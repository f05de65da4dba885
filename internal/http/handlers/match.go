package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
)

// StateResponse is the body returned by the state and event endpoints.
type StateResponse struct {
	State scoring.MatchState `json:"state"`
	// UndoAvailable is how many events can still be undone.
	UndoAvailable int `json:"undo_available"`
}

func newStateResponse(s scoring.MatchState) StateResponse {
	undo := len(s.PastStates)
	s.PastStates = nil
	return StateResponse{State: s, UndoAvailable: undo}
}

func StateHandler(sess MatchSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newStateResponse(sess.State()))
	}
}

func ScorecardHandler(sess MatchSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, scoring.BuildScorecard(sess.State()))
	}
}

// EventHandler decodes an event of type E from the request body and dispatches it.
// An empty body is the zero event, which is all the field-less events need.
// It answers 409 with the unchanged state when the event does not apply.
func EventHandler[E scoring.Event](sess MatchSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev E
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil && !errors.Is(err, io.EOF) {
			log.Warn("Invalid event body", "event", ev.Kind(), "error", err)
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		event, err := normalize(ev)
		if err != nil {
			log.Warn("Invalid event", "event", ev.Kind(), "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		next, changed := sess.Dispatch(r.Context(), event)
		if !changed {
			log.Debug("Event did not apply", "event", ev.Kind(), "status", next.Status)
			writeJSON(w, http.StatusConflict, struct {
				errorResponse
				StateResponse
			}{
				errorResponse{Error: fmt.Sprintf("%s is not allowed while the match is %s", ev.Kind(), next.Status)},
				newStateResponse(next),
			})
			return
		}
		writeJSON(w, http.StatusOK, newStateResponse(next))
	}
}

// normalize fills defaults the scorer may leave out and rejects unknown enum values.
func normalize(ev scoring.Event) (scoring.Event, error) {
	switch e := ev.(type) {
	case scoring.BowlBall:
		if e.ExtraType == "" {
			e.ExtraType = scoring.ExtraNone
		}
		if e.WicketType == "" {
			e.WicketType = scoring.WicketNone
		}
		if !e.ExtraType.Valid() {
			return nil, fmt.Errorf("unknown extra_type %q", e.ExtraType)
		}
		if !e.WicketType.Valid() {
			return nil, fmt.Errorf("unknown wicket_type %q", e.WicketType)
		}
		return e, nil
	case scoring.StartMatch:
		if e.BattingFirst == "" {
			e.BattingFirst = scoring.SideTeamA
		}
		if e.BattingFirst != scoring.SideTeamA && e.BattingFirst != scoring.SideTeamB {
			return nil, fmt.Errorf("unknown batting_first %q", e.BattingFirst)
		}
		return e, nil
	}
	return ev, nil
}
