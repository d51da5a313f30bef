// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and constraint error detection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is deliberately portable across postgres and sqlite: timestamps are
written by the application, never defaulted in SQL.

# Tables

The schema includes:

  - app_user: Accounts with unique emails and bcrypt password hashes
  - poll: Poll metadata owned by a user
  - option: Ordered voting options per poll
  - vote: One vote per (poll, voter), enforced by a UNIQUE constraint

# Relationships

	app_user 1──* poll
	poll 1──* option
	poll 1──* vote
	app_user 1──* vote

# The Vote Constraint

UNIQUE (poll_id, voter_id) on the vote table is the single source of truth
for vote integrity. Two concurrent submissions from the same user can both
pass the application-level existence check; only one insert can commit.
IsUniqueViolation recognizes the breach from either backend so the loser is
reported as a duplicate vote rather than a server error.
*/
package db
