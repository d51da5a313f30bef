// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the credential gate, password hashing, and session tokens.

# Credential Gate

Gate wraps an IdentityProvider and flattens every failure into a single
generic error:

	gate := auth.NewGate(auth.NewDBProvider(db))
	id, err := gate.Login(ctx, email, password)

Whether the email is unknown, the password is wrong, or the provider itself
failed, the caller sees only ErrInvalidCredentials. The real cause is logged
server-side. This closes the account-enumeration side channel.

# Passwords

Bcrypt with the default cost:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

# Session Tokens

Sessions are HS256-signed JWTs carrying the user ID and email:

	token, err := auth.MintSessionToken(identity, secret)
	identity, err := auth.ParseSessionToken(token, secret)

Tokens expire after SessionTTL (24h). Any parse failure returns
ErrInvalidToken.

# IP Hashing

For privacy-preserving vote audit rows:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
