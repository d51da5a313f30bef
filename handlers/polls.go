// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/nanafox/alx-polly/cliparse"
	"github.com/nanafox/alx-polly/middleware"
	"github.com/nanafox/alx-polly/models"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// validateOptions checks the option labels for create/update requests.
// Returns a user-facing message, or "" when valid.
func validateOptions(options []string) string {
	if len(options) < models.MinOptions {
		return "poll needs at least 2 options"
	}
	if len(options) > models.MaxOptions {
		return "poll cannot have more than 10 options"
	}
	for _, label := range options {
		if strings.TrimSpace(label) == "" {
			return "option labels cannot be empty"
		}
	}
	return ""
}

// getPoll loads a poll row by ID. Returns sql.ErrNoRows when absent.
func getPoll(db *sql.DB, pollID string) (models.Poll, error) {
	var poll models.Poll
	var description sql.NullString
	err := db.QueryRow(`
		SELECT id, owner_id, title, description, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.OwnerID, &poll.Title, &description, &poll.CreatedAt)
	poll.Description = description.String
	return poll, err
}

// insertOptions writes the option rows for a poll inside a transaction.
func insertOptions(tx *sql.Tx, pollID string, labels []string) error {
	for i, label := range labels {
		_, err := tx.Exec(`
			INSERT INTO option (id, poll_id, position, label)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), pollID, i, strings.TrimSpace(label))
		if err != nil {
			return err
		}
	}
	return nil
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r, h.cfg.SessionSecret)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if msg := validateOptions(req.Options); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	pollID := uuid.NewString()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, owner_id, title, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, pollID, identity.UserID, strings.TrimSpace(req.Title), req.Description, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	if err := insertOptions(tx, pollID, req.Options); err != nil {
		slog.Error("failed to insert options", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "owner_id", identity.UserID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: pollID,
	})
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT p.id, p.owner_id, p.title, p.description, p.created_at, COUNT(v.id)
		FROM poll p
		LEFT JOIN vote v ON v.poll_id = p.id
		GROUP BY p.id, p.owner_id, p.title, p.description, p.created_at
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var p models.PollSummary
		var description sql.NullString
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &description, &p.CreatedAt, &p.VoteCount); err != nil {
			slog.Error("failed to scan poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		p.Description = description.String
		polls = append(polls, p)
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	poll, err := getPoll(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, poll_id, position, label
		FROM option
		WHERE poll_id = $1
		ORDER BY position
	`, poll.ID)
	if err != nil {
		slog.Error("failed to query options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Position, &opt.Label); err != nil {
			slog.Error("failed to scan option", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		options = append(options, opt)
	}

	var voteCount int
	err = h.db.QueryRow(`SELECT COUNT(id) FROM vote WHERE poll_id = $1`, poll.ID).Scan(&voteCount)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// is_owner is a display signal only; update/delete re-check server-side
	identity, _ := middleware.IdentityFromRequest(r, h.cfg.SessionSecret)

	middleware.JSONResponse(w, http.StatusOK, models.PollDetail{
		Poll:       poll,
		Options:    options,
		VoteCount:  voteCount,
		CreatedAgo: humanize.Time(poll.CreatedAt),
		IsOwner:    poll.OwnedBy(identity.UserID),
	})
}

// UpdatePoll handles PUT /polls/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	identity, ok := middleware.IdentityFromRequest(r, h.cfg.SessionSecret)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	poll, err := getPoll(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !poll.OwnedBy(identity.UserID) {
		middleware.ErrorResponse(w, http.StatusForbidden, "You do not own this poll")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if msg := validateOptions(req.Options); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Exclusive lock on the poll row under postgres: a concurrent vote holds
	// a share lock until it commits, so it either lands before the freeze
	// check below or waits out the rewrite. sqlite serializes writers at the
	// single-connection pool.
	if h.cfg.DatabaseType == cliparse.DatabasePostgres {
		if _, err := tx.Exec(`SELECT id FROM poll WHERE id = $1 FOR UPDATE`, pollID); err != nil {
			slog.Error("failed to lock poll", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	// Options freeze once the first vote lands; a cast vote's option_index
	// must keep pointing at the option it was cast for. The count runs
	// inside the transaction so no vote can slip in between it and the
	// option rewrite.
	var voteCount int
	err = tx.QueryRow(`SELECT COUNT(id) FROM vote WHERE poll_id = $1`, pollID).Scan(&voteCount)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if voteCount > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll already has votes and can no longer be edited")
		return
	}

	_, err = tx.Exec(`
		UPDATE poll
		SET title = $1, description = $2
		WHERE id = $3
	`, strings.TrimSpace(req.Title), req.Description, pollID)
	if err != nil {
		slog.Error("failed to update poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	_, err = tx.Exec(`DELETE FROM option WHERE poll_id = $1`, pollID)
	if err != nil {
		slog.Error("failed to delete old options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	if err := insertOptions(tx, pollID, req.Options); err != nil {
		slog.Error("failed to insert options", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	slog.Info("poll updated", "poll_id", pollID, "owner_id", identity.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Poll updated successfully",
	})
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	identity, ok := middleware.IdentityFromRequest(r, h.cfg.SessionSecret)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	poll, err := getPoll(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !poll.OwnedBy(identity.UserID) {
		middleware.ErrorResponse(w, http.StatusForbidden, "You do not own this poll")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Explicit child deletes keep the DDL portable (no FK cascade on sqlite)
	for _, q := range []string{
		`DELETE FROM vote WHERE poll_id = $1`,
		`DELETE FROM option WHERE poll_id = $1`,
		`DELETE FROM poll WHERE id = $1`,
	} {
		if _, err := tx.Exec(q, pollID); err != nil {
			slog.Error("failed to delete poll", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID, "owner_id", identity.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Poll deleted successfully",
	})
}
