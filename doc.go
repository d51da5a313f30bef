// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ALX Polly API server.

ALX Polly is a polling service: registered users create polls with a fixed
set of options, anyone can read them, and each signed-in user may cast
exactly one vote per poll.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SESSION_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3000 -d "postgres://..." --session-secret "..."

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string, or a file path for sqlite
  - SESSION_SECRET (--session-secret): Secret for signing session tokens
  - IP_HASH_SALT (--ip-salt): Secret for hashing voter IP addresses

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): "postgres" or "sqlite" (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sessions, polls, votes, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, bearer identity extraction
  - models: Request/response types and the poll ownership check
  - auth: Credential gate, password hashing, session tokens
  - db: Schema creation and constraint-violation detection
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
