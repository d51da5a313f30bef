// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest / LoginRequest: email, password
  - CreatePollRequest / UpdatePollRequest: title, description, options
  - CastVoteRequest: option_index

# Response Types

Types for JSON responses:

  - SessionResponse: token, user_id, email
  - CreatePollResponse: poll_id
  - CastVoteResponse: vote_id
  - PollSummary / PollDetail: poll data for list and detail views
  - ResultsResponse: per-option tallies and the total
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: account with a bcrypt hash (never serialized)
  - Poll: poll metadata with an immutable owner reference
  - Option: ordered option label
  - Vote: one (poll, voter) -> option_index binding

# Ownership

Poll.OwnedBy is the single ownership check shared by the is_owner display
flag and the mutating handlers' authorization guard. It is pure and returns
false for an absent identity.
*/
package models
