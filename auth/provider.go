// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var errBadCredentials = errors.New("credentials do not match")

// DBProvider verifies credentials against the app_user table.
type DBProvider struct {
	db *sql.DB
}

func NewDBProvider(db *sql.DB) *DBProvider {
	return &DBProvider{db: db}
}

// Authenticate looks the account up by email and checks the password hash.
// The distinct failure causes here never reach users; the gate flattens them.
func (p *DBProvider) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	var userID, passwordHash string
	err := p.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM app_user WHERE email = $1
	`, email).Scan(&userID, &passwordHash)

	if err == sql.ErrNoRows {
		return Identity{}, errBadCredentials
	}
	if err != nil {
		return Identity{}, fmt.Errorf("failed to query user: %w", err)
	}

	if !CheckPassword(passwordHash, password) {
		return Identity{}, errBadCredentials
	}

	return Identity{UserID: userID, Email: email}, nil
}
