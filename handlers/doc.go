// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ALX Polly API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SessionHandler: Registration, login, current identity
  - PollHandler: Poll CRUD with ownership enforcement
  - VoteHandler: Single-choice vote submission
  - ResultsHandler: Per-option tallies

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Sessions

	POST /auth/register → Register (returns session token)
	POST /auth/login    → Login (uniform failure, see package auth)
	GET  /auth/me       → Me

Authenticated requests carry "Authorization: Bearer <token>".

# Polls

	POST   /polls      → CreatePoll (signed-in users)
	GET    /polls      → ListPolls (public)
	GET    /polls/{id} → GetPoll (public; is_owner flag for the caller)
	PUT    /polls/{id} → UpdatePoll (owner only, frozen once voted on)
	DELETE /polls/{id} → DeletePoll (owner only)

The is_owner flag in poll detail is a display signal. UpdatePoll and
DeletePoll re-run the same Poll.OwnedBy check server-side before mutating;
the flag is never the authorization boundary.

# The Vote Guard

CastVote in votes.go is the vote-integrity core:

	voteID, err := handlers.CastVote(db, driver, pollID, optionIndex, voterID, ipHash)

It rejects anonymous submissions, bounds-checks the option index, runs a
fast-path duplicate lookup (whose own failure is reported, never mistaken
for "not voted"), and relies on the storage-level UNIQUE constraint to close
the check-then-act race: a constraint violation on insert comes back as the
same duplicate-vote outcome. The guard runs in one transaction, with a share
lock on the poll row under postgres, so UpdatePoll cannot rewrite the options
between the bounds check and the commit; UpdatePoll takes the exclusive lock
and re-counts votes inside its own transaction before touching options.

# Results

	GET /polls/{id}/results → GetResults

Tallies votes per option index; options with no votes appear with zero.
*/
package handlers
