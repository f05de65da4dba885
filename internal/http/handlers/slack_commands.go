package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// parseSlashCommand reads the command from r. When signingSecret is set the
// request signature is checked against the body.
func parseSlashCommand(r *http.Request, signingSecret string) (slack.SlashCommand, int, error) {
	if signingSecret == "" {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			return cmd, http.StatusBadRequest, err
		}
		return cmd, http.StatusOK, nil
	}

	verifier, err := slack.NewSecretsVerifier(r.Header, signingSecret)
	if err != nil {
		return slack.SlashCommand{}, http.StatusUnauthorized, err
	}
	r.Body = io.NopCloser(io.TeeReader(r.Body, &verifier))
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		return cmd, http.StatusBadRequest, err
	}
	if err := verifier.Ensure(); err != nil {
		return cmd, http.StatusUnauthorized, err
	}
	return cmd, http.StatusOK, nil
}

// ScoreCommandHandler answers the /score slash command with the current score.
func ScoreCommandHandler(sess MatchSession, notifier notifier.Notifier, signingSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, status, err := parseSlashCommand(r, signingSecret)
		if err != nil {
			log.Warn("Rejected slash command", "status", status, "error", err)
			http.Error(w, http.StatusText(status), status)
			return
		}
		log.Info("Received score command", "user", cmd.UserName, "channel", cmd.ChannelID)

		msg, err := notifier.FormatScore(sess.State())
		if err != nil {
			http.Error(w, "Failed to format score", http.StatusInternalServerError)
			log.Error("Failed to format score", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
