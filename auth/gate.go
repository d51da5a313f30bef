// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"log/slog"
)

// ErrInvalidCredentials is the only error the credential gate ever returns.
// Unknown email, wrong password, and provider failures all collapse into it
// so the response gives no account-enumeration signal.
var ErrInvalidCredentials = errors.New("invalid email or password")

// IdentityProvider verifies credentials against an identity backend.
type IdentityProvider interface {
	// Authenticate returns the identity for valid credentials. Implementations
	// may return any error; callers must not surface it to users.
	Authenticate(ctx context.Context, email, password string) (Identity, error)
}

// Gate normalizes every login failure into ErrInvalidCredentials.
type Gate struct {
	provider IdentityProvider
}

func NewGate(provider IdentityProvider) *Gate {
	return &Gate{provider: provider}
}

// Login authenticates the credentials. The underlying failure cause is
// logged server-side only.
func (g *Gate) Login(ctx context.Context, email, password string) (Identity, error) {
	if email == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	id, err := g.provider.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("login rejected", "email", email, "cause", err)
		return Identity{}, ErrInvalidCredentials
	}

	return id, nil
}
