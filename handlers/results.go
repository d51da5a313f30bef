// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/nanafox/alx-polly/cliparse"
	"github.com/nanafox/alx-polly/middleware"
	"github.com/nanafox/alx-polly/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /polls/{id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	if _, err := getPoll(h.db, pollID); err != nil {
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return
		}
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT position, label
		FROM option
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		slog.Error("failed to query options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	tallies := []models.OptionTally{}
	for rows.Next() {
		var tally models.OptionTally
		if err := rows.Scan(&tally.Index, &tally.Label); err != nil {
			slog.Error("failed to scan option", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		tallies = append(tallies, tally)
	}

	voteRows, err := h.db.Query(`
		SELECT option_index, COUNT(id)
		FROM vote
		WHERE poll_id = $1
		GROUP BY option_index
	`, pollID)
	if err != nil {
		slog.Error("failed to query vote counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer voteRows.Close()

	total := 0
	for voteRows.Next() {
		var index, count int
		if err := voteRows.Scan(&index, &count); err != nil {
			slog.Error("failed to scan vote count", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if index >= 0 && index < len(tallies) {
			tallies[index].Votes = count
		}
		total += count
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		PollID:  pollID,
		Total:   total,
		Tallies: tallies,
	})
}
