// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ALX Polly API.

# Route Registration

NewRouter wires all endpoints onto a mux and returns it wrapped in the CORS
middleware:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Sessions:

	POST /auth/register - Create account
	POST /auth/login    - Sign in
	GET  /auth/me       - Current identity

Polls (mutations require Authorization: Bearer):

	POST   /polls      - Create poll
	GET    /polls      - List polls
	GET    /polls/{id} - Poll detail
	PUT    /polls/{id} - Edit poll (owner only)
	DELETE /polls/{id} - Delete poll (owner only)

Voting and results:

	POST /polls/{id}/votes   - Cast a vote (one per user per poll)
	GET  /polls/{id}/results - Per-option tallies

All routes use Go 1.22+ method-qualified patterns and are wrapped with
request logging.
*/
package router
