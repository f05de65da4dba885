package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
)

// MatchSession is the owner of the current match that the handlers drive.
type MatchSession interface {
	State() scoring.MatchState
	Dispatch(ctx context.Context, ev scoring.Event) (scoring.MatchState, bool)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
