package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/store"
)

func ListArchivedHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				log.Warn("Invalid 'limit' parameter provided. Using default.", "limit_param", limitStr)
			} else {
				limit = parsed
			}
		}

		matches, err := st.ListArchived(r.Context(), limit)
		if err != nil {
			log.Error("Failed to list archived matches", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list archived matches")
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func GetArchivedHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		match, err := st.GetArchived(r.Context(), slug)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no archived match "+slug)
			return
		}
		if err != nil {
			log.Error("Failed to get archived match", "slug", slug, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get archived match")
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

// StatsHandler returns the all-time tallies kept in the database.
func StatsHandler(tallies metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := tallies.GetAll()
		if err != nil {
			log.Error("Failed to read tallies", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to read stats")
			return
		}
		writeJSON(w, http.StatusOK, values)
	}
}
