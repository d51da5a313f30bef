// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nanafox/alx-polly/auth"
	"github.com/nanafox/alx-polly/cliparse"
	"github.com/nanafox/alx-polly/db"
)

// SetupTestDB creates a fresh sqlite database in a per-test temp dir with the
// full schema. The single-connection pool mirrors production sqlite usage.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "polly_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseURL:   "file:test.db",
		DatabaseType:  cliparse.DatabaseSQLite,
		SessionSecret: "test-session-secret",
		IPHashSalt:    "test-ip-salt",
	}
}

// CreateTestUser inserts an account and returns its user ID
func CreateTestUser(t *testing.T, conn *sql.DB, email, password string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	userID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO app_user (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, email, hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// MintTestToken returns a session token for the user, signed with the
// test config secret
func MintTestToken(t *testing.T, userID, email string) string {
	t.Helper()

	token, err := auth.MintSessionToken(auth.Identity{UserID: userID, Email: email}, GetTestConfig().SessionSecret)
	if err != nil {
		t.Fatalf("Failed to mint test token: %v", err)
	}

	return token
}

// CreateTestPoll inserts a poll with options and returns the poll ID
func CreateTestPoll(t *testing.T, conn *sql.DB, ownerID, title string, options []string) string {
	t.Helper()

	pollID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll (id, owner_id, title, description, created_at)
		VALUES ($1, $2, $3, 'A test poll', $4)
	`, pollID, ownerID, title, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, label := range options {
		_, err := conn.Exec(`
			INSERT INTO option (id, poll_id, position, label)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), pollID, i, label)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
	}

	return pollID
}

// CastTestVote inserts a vote row directly and returns the vote ID
func CastTestVote(t *testing.T, conn *sql.DB, pollID, voterID string, optionIndex int) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, voter_id, option_index, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, 'testhash', $5)
	`, voteID, pollID, voterID, optionIndex, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// CountVotes returns the number of vote rows for a (poll, voter) pair
func CountVotes(t *testing.T, conn *sql.DB, pollID, voterID string) int {
	t.Helper()

	var count int
	err := conn.QueryRow(`
		SELECT COUNT(id) FROM vote WHERE poll_id = $1 AND voter_id = $2
	`, pollID, voterID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}

	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
