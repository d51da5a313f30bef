// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Request Logging

	mux.HandleFunc("POST /polls", middleware.WithLogging(handler.CreatePoll))

Logs method, path, remote address, and duration via slog.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, payload)
	middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	err := middleware.ParseJSONBody(r, &req)

ErrorResponse writes the {error, message} envelope. Messages passed to it are
the only error text clients ever see.

# Identity Extraction

	identity, ok := middleware.IdentityFromRequest(r, cfg.SessionSecret)

Parses the Authorization bearer token into an auth.Identity. Handlers decide
per-route whether a missing identity is a 401 or simply an anonymous read.

# CORS

CORS wraps the whole mux and answers preflight requests.

# Client IP

GetClientIP checks X-Forwarded-For and X-Real-IP before RemoteAddr.
*/
package middleware
