// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment variables.

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])

CLI flags take precedence over environment variables.

# Settings

Network:

  - -p / PORT: Server port (default 3000)
  - -d / DATABASE_URL: Connection string, or a file path for sqlite
  - -t / DATABASE_TYPE: "sqlite" (default) or "postgres"

Secrets (required, prefer env):

  - -session-secret / SESSION_SECRET: HMAC secret for session tokens
  - -ip-salt / IP_HASH_SALT: Salt for voter IP hashing

# Driver Selection

Config.Driver maps the database type onto the registered database/sql
driver name ("postgres" for lib/pq, "sqlite" for modernc.org/sqlite).
*/
package cliparse
