package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/wicketkeeper/internal/live"
)

// LiveUpdatePushHandler receives live match updates from a Pub/Sub push subscription.
// Malformed payloads are acknowledged so Pub/Sub does not redeliver them forever.
func LiveUpdatePushHandler(board *live.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received live update message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data      string `json:"data"`
				MessageID string `json:"messageId"`
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var update live.Update
		if err := live.Decode(rawData, &update); err != nil || update.MatchID == "" {
			log.Warn("Dropping undecodable live update", "message_id", pubsubMsg.Message.MessageID, "error", err)
			w.Write([]byte("OK"))
			return
		}

		if !board.Record(update) {
			log.Debug("Dropped stale live update", "match_id", update.MatchID)
		}
		w.Write([]byte("OK"))
	}
}

func ListLiveHandler(board *live.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, board.List())
	}
}

func GetLiveHandler(board *live.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		update, ok := board.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "no live match "+id)
			return
		}
		writeJSON(w, http.StatusOK, update)
	}
}
