// Copyright (c) 2026 ALX Polly authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nanafox/alx-polly/models"
	"github.com/nanafox/alx-polly/testutil"
)

func TestCreatePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	userID := testutil.CreateTestUser(t, db, "alice@example.com", "password123")
	token := testutil.MintTestToken(t, userID, "alice@example.com")

	tests := []struct {
		name           string
		token          string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:  "valid poll",
			token: token,
			requestBody: models.CreatePollRequest{
				Title:   "Favorite language",
				Options: []string{"Go", "Rust", "Python"},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:  "no identity",
			token: "",
			requestBody: models.CreatePollRequest{
				Title:   "Favorite language",
				Options: []string{"Go", "Rust"},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:  "missing title",
			token: token,
			requestBody: models.CreatePollRequest{
				Options: []string{"Go", "Rust"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "too few options",
			token: token,
			requestBody: models.CreatePollRequest{
				Title:   "Lonely poll",
				Options: []string{"Only one"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "blank option label",
			token: token,
			requestBody: models.CreatePollRequest{
				Title:   "Blank label",
				Options: []string{"Go", "   "},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "too many options",
			token: token,
			requestBody: models.CreatePollRequest{
				Title:   "Huge poll",
				Options: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			req := testutil.MakeRequest("POST", "/polls", tt.requestBody, headers)
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreatePollResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.PollID == "" {
					t.Fatal("expected non-empty poll_id")
				}

				// Owner must be the caller, not anything from the payload
				var ownerID string
				if err := db.QueryRow(`SELECT owner_id FROM poll WHERE id = $1`, resp.PollID).Scan(&ownerID); err != nil {
					t.Fatalf("failed to read back poll: %v", err)
				}
				if ownerID != userID {
					t.Errorf("expected owner %q, got %q", userID, ownerID)
				}
			}
		})
	}
}

func TestListPolls(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	userID := testutil.CreateTestUser(t, db, "alice@example.com", "password123")
	pollID := testutil.CreateTestPoll(t, db, userID, "First poll", []string{"A", "B"})
	testutil.CreateTestPoll(t, db, userID, "Second poll", []string{"C", "D"})
	testutil.CastTestVote(t, db, pollID, userID, 0)

	// Listing is public: no token on the request
	req := testutil.MakeRequest("GET", "/polls", nil, nil)
	w := httptest.NewRecorder()

	handler.ListPolls(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var polls []models.PollSummary
	testutil.AssertJSON(t, w, &polls)
	if len(polls) != 2 {
		t.Fatalf("expected 2 polls, got %d", len(polls))
	}

	for _, p := range polls {
		if p.ID == pollID && p.VoteCount != 1 {
			t.Errorf("expected vote_count 1 for %s, got %d", pollID, p.VoteCount)
		}
	}
}

func TestGetPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	ownerID := testutil.CreateTestUser(t, db, "owner@example.com", "password123")
	otherID := testutil.CreateTestUser(t, db, "other@example.com", "password123")
	pollID := testutil.CreateTestPoll(t, db, ownerID, "Detail poll", []string{"A", "B", "C"})

	tests := []struct {
		name        string
		token       string
		wantIsOwner bool
	}{
		{"as owner", testutil.MintTestToken(t, ownerID, "owner@example.com"), true},
		{"as non-owner", testutil.MintTestToken(t, otherID, "other@example.com"), false},
		{"anonymous", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			req := testutil.MakeRequest("GET", "/polls/"+pollID, nil, headers)
			req.SetPathValue("id", pollID)
			w := httptest.NewRecorder()

			handler.GetPoll(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.PollDetail
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Options) != 3 {
				t.Errorf("expected 3 options, got %d", len(resp.Options))
			}
			if resp.IsOwner != tt.wantIsOwner {
				t.Errorf("expected is_owner=%v, got %v", tt.wantIsOwner, resp.IsOwner)
			}
			if resp.CreatedAgo == "" {
				t.Error("expected created_ago to be populated")
			}
		})
	}

	t.Run("not found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls/nonexistent", nil, nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.GetPoll(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestUpdatePollOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	ownerID := testutil.CreateTestUser(t, db, "owner@example.com", "password123")
	otherID := testutil.CreateTestUser(t, db, "other@example.com", "password123")
	pollID := testutil.CreateTestPoll(t, db, ownerID, "Original title", []string{"A", "B"})

	body := models.UpdatePollRequest{
		Title:   "New title",
		Options: []string{"X", "Y", "Z"},
	}

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"non-owner", testutil.MintTestToken(t, otherID, "other@example.com"), http.StatusForbidden},
		{"owner", testutil.MintTestToken(t, ownerID, "owner@example.com"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			req := testutil.MakeRequest("PUT", "/polls/"+pollID, body, headers)
			req.SetPathValue("id", pollID)
			w := httptest.NewRecorder()

			handler.UpdatePoll(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// Only the owner's request may have gone through
	var title string
	if err := db.QueryRow(`SELECT title FROM poll WHERE id = $1`, pollID).Scan(&title); err != nil {
		t.Fatalf("failed to read back poll: %v", err)
	}
	if title != "New title" {
		t.Errorf("expected updated title, got %q", title)
	}

	var optionCount int
	if err := db.QueryRow(`SELECT COUNT(id) FROM option WHERE poll_id = $1`, pollID).Scan(&optionCount); err != nil {
		t.Fatalf("failed to count options: %v", err)
	}
	if optionCount != 3 {
		t.Errorf("expected 3 options after update, got %d", optionCount)
	}
}

func TestUpdatePollFrozenAfterVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	ownerID := testutil.CreateTestUser(t, db, "owner@example.com", "password123")
	pollID := testutil.CreateTestPoll(t, db, ownerID, "Voted poll", []string{"A", "B"})
	testutil.CastTestVote(t, db, pollID, ownerID, 0)

	token := testutil.MintTestToken(t, ownerID, "owner@example.com")
	req := testutil.MakeRequest("PUT", "/polls/"+pollID,
		models.UpdatePollRequest{Title: "Changed", Options: []string{"C", "D"}},
		map[string]string{"Authorization": "Bearer " + token})
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()

	handler.UpdatePoll(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestDeletePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	ownerID := testutil.CreateTestUser(t, db, "owner@example.com", "password123")
	otherID := testutil.CreateTestUser(t, db, "other@example.com", "password123")
	pollID := testutil.CreateTestPoll(t, db, ownerID, "Doomed poll", []string{"A", "B"})
	testutil.CastTestVote(t, db, pollID, otherID, 1)

	t.Run("non-owner cannot delete", func(t *testing.T) {
		token := testutil.MintTestToken(t, otherID, "other@example.com")
		req := testutil.MakeRequest("DELETE", "/polls/"+pollID, nil,
			map[string]string{"Authorization": "Bearer " + token})
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("owner deletes with children", func(t *testing.T) {
		token := testutil.MintTestToken(t, ownerID, "owner@example.com")
		req := testutil.MakeRequest("DELETE", "/polls/"+pollID, nil,
			map[string]string{"Authorization": "Bearer " + token})
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		for _, table := range []string{"poll", "option", "vote"} {
			var count int
			query := "SELECT COUNT(*) FROM " + table + " WHERE "
			if table == "poll" {
				query += "id = $1"
			} else {
				query += "poll_id = $1"
			}
			if err := db.QueryRow(query, pollID).Scan(&count); err != nil {
				t.Fatalf("failed to count %s rows: %v", table, err)
			}
			if count != 0 {
				t.Errorf("expected 0 %s rows after delete, got %d", table, count)
			}
		}
	})
}
