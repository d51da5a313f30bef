// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nanafox/alx-polly/auth"
	"github.com/nanafox/alx-polly/cliparse"
	"github.com/nanafox/alx-polly/db"
	"github.com/nanafox/alx-polly/middleware"
	"github.com/nanafox/alx-polly/models"
)

// Vote guard failure classes. CastVote returns exactly one of these; the
// underlying store error is logged, never propagated.
var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPollNotFound     = errors.New("poll not found")
	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrDuplicateVote    = errors.New("already voted on this poll")
	ErrVoteLookup       = errors.New("could not verify voting status")
	ErrVoteStore        = errors.New("could not record vote")
)

// CastVote validates and persists a single vote, returning the new vote ID.
//
// The whole guard runs in one transaction so the option count the vote is
// validated against cannot be rewritten under it. On postgres a share lock on
// the poll row holds option rewrites out until the vote commits while still
// letting votes on the same poll proceed concurrently; sqlite serializes
// writers at the single-connection pool.
//
// The existence check is only a fast path for a friendly duplicate error.
// Two concurrent submissions can both pass it; the UNIQUE (poll_id, voter_id)
// constraint on the vote table is what actually holds the one-vote invariant,
// and its violation is translated back into ErrDuplicateVote.
func CastVote(dbConn *sql.DB, driver, pollID string, optionIndex int, voterID, ipHash string) (string, error) {
	if voterID == "" {
		return "", ErrUnauthenticated
	}

	tx, err := dbConn.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err, "poll_id", pollID)
		return "", ErrVoteStore
	}
	defer tx.Rollback()

	if driver == cliparse.DatabasePostgres {
		if _, err := tx.Exec(`SELECT id FROM poll WHERE id = $1 FOR SHARE`, pollID); err != nil {
			slog.Error("failed to lock poll", "error", err, "poll_id", pollID)
			return "", ErrVoteLookup
		}
	}

	var optionCount int
	err = tx.QueryRow(`
		SELECT COUNT(o.id)
		FROM poll p
		LEFT JOIN option o ON o.poll_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`, pollID).Scan(&optionCount)

	if err == sql.ErrNoRows {
		return "", ErrPollNotFound
	}
	if err != nil {
		slog.Error("failed to query poll options", "error", err, "poll_id", pollID)
		return "", ErrVoteLookup
	}

	if optionIndex < 0 || optionIndex >= optionCount {
		return "", ErrOptionOutOfRange
	}

	// Fast-path duplicate check. A lookup failure is NOT "no vote found".
	var existingID string
	err = tx.QueryRow(`
		SELECT id FROM vote WHERE poll_id = $1 AND voter_id = $2
	`, pollID, voterID).Scan(&existingID)

	if err == nil {
		return "", ErrDuplicateVote
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to check existing vote", "error", err, "poll_id", pollID)
		return "", ErrVoteLookup
	}

	voteID := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO vote (id, poll_id, voter_id, option_index, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, pollID, voterID, optionIndex, ipHash, time.Now().UTC())

	if err != nil {
		// The constraint is the source of truth: a concurrent winner beat us
		if db.IsUniqueViolation(err) {
			return "", ErrDuplicateVote
		}
		slog.Error("failed to insert vote", "error", err, "poll_id", pollID)
		return "", ErrVoteStore
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit vote", "error", err, "poll_id", pollID)
		return "", ErrVoteStore
	}

	return voteID, nil
}

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// CastVote handles POST /polls/{id}/votes
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	// Identity first: an anonymous request is rejected before its body is
	// even looked at
	identity, ok := middleware.IdentityFromRequest(r, h.cfg.SessionSecret)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in to vote")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	voteID, err := CastVote(h.db, h.cfg.Driver(), pollID, req.OptionIndex, identity.UserID, ipHash)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in to vote")
		case errors.Is(err, ErrPollNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		case errors.Is(err, ErrOptionOutOfRange):
			middleware.ErrorResponse(w, http.StatusBadRequest, "option_index is not valid for this poll")
		case errors.Is(err, ErrDuplicateVote):
			middleware.ErrorResponse(w, http.StatusConflict, "You have already voted on this poll")
		default:
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	slog.Info("vote cast", "poll_id", pollID, "vote_id", voteID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID: voteID,
	})
}
