// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nanafox/alx-polly/auth"
	"github.com/nanafox/alx-polly/cliparse"
	"github.com/nanafox/alx-polly/db"
	"github.com/nanafox/alx-polly/middleware"
	"github.com/nanafox/alx-polly/models"
)

type SessionHandler struct {
	db   *sql.DB
	cfg  cliparse.Config
	gate *auth.Gate
}

func NewSessionHandler(dbConn *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{
		db:   dbConn,
		cfg:  cfg,
		gate: auth.NewGate(auth.NewDBProvider(dbConn)),
	}
}

// Register handles POST /auth/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < auth.MinPasswordLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if len(req.Password) > auth.MaxPasswordLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at most 72 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	userID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO app_user (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, email, hash, time.Now().UTC())

	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	identity := auth.Identity{UserID: userID, Email: email}
	token, err := auth.MintSessionToken(identity, h.cfg.SessionSecret)
	if err != nil {
		slog.Error("failed to mint session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	slog.Info("user registered", "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.SessionResponse{
		Token:  token,
		UserID: userID,
		Email:  email,
	})
}

// Login handles POST /auth/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	identity, err := h.gate.Login(r.Context(), email, req.Password)
	if err != nil {
		// Always the same message, whatever the cause
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := auth.MintSessionToken(identity, h.cfg.SessionSecret)
	if err != nil {
		slog.Error("failed to mint session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	slog.Info("user logged in", "user_id", identity.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Token:  token,
		UserID: identity.UserID,
		Email:  identity.Email,
	})
}

// Me handles GET /auth/me
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r, h.cfg.SessionSecret)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		UserID: identity.UserID,
		Email:  identity.Email,
	})
}
