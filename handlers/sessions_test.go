package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nanafox/alx-polly/models"
	"github.com/nanafox/alx-polly/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(db, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid registration",
			requestBody:    models.RegisterRequest{Email: "alice@example.com", Password: "password123"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate email",
			requestBody:    models.RegisterRequest{Email: "alice@example.com", Password: "password456"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "duplicate email different case",
			requestBody:    models.RegisterRequest{Email: "ALICE@example.com", Password: "password456"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing email",
			requestBody:    models.RegisterRequest{Email: "", Password: "password123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid email",
			requestBody:    models.RegisterRequest{Email: "not-an-email", Password: "password123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			requestBody:    models.RegisterRequest{Email: "bob@example.com", Password: "short"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			// bcrypt rejects inputs over 72 bytes; that is a 400, not a 500
			name:           "password over bcrypt limit",
			requestBody:    models.RegisterRequest{Email: "carol@example.com", Password: strings.Repeat("x", 73)},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth/register", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Register(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.SessionResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Token == "" {
					t.Error("expected non-empty session token")
				}
				if resp.UserID == "" {
					t.Error("expected non-empty user_id")
				}
			}
		})
	}
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/auth/register",
		models.RegisterRequest{Email: "carol@example.com", Password: "supersecret99"}, nil)
	w := httptest.NewRecorder()
	handler.Register(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var storedHash string
	err := db.QueryRow(`SELECT password_hash FROM app_user WHERE email = $1`, "carol@example.com").Scan(&storedHash)
	if err != nil {
		t.Fatalf("failed to read back user: %v", err)
	}
	if storedHash == "supersecret99" {
		t.Error("password stored in plaintext")
	}
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(db, cfg)

	testutil.CreateTestUser(t, db, "alice@example.com", "password123")

	req := testutil.MakeRequest("POST", "/auth/login",
		models.LoginRequest{Email: "alice@example.com", Password: "password123"}, nil)
	w := httptest.NewRecorder()

	handler.Login(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SessionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Token == "" {
		t.Error("expected non-empty session token")
	}
	if resp.Email != "alice@example.com" {
		t.Errorf("expected email in response, got %q", resp.Email)
	}
}

// A failed login must return the identical response body whether the account
// exists or not, so the endpoint cannot be used to enumerate accounts.
func TestLoginFailureIsUniform(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(db, cfg)

	testutil.CreateTestUser(t, db, "alice@example.com", "password123")

	bodies := []models.LoginRequest{
		{Email: "alice@example.com", Password: "wrongpassword"},
		{Email: "nobody@example.com", Password: "password123"},
		{Email: "", Password: ""},
	}

	var responses []string
	for _, body := range bodies {
		req := testutil.MakeRequest("POST", "/auth/login", body, nil)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
		responses = append(responses, w.Body.String())
	}

	for i := 1; i < len(responses); i++ {
		if responses[i] != responses[0] {
			t.Errorf("login failure bodies differ: %q vs %q", responses[0], responses[i])
		}
	}
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(db, cfg)

	userID := testutil.CreateTestUser(t, db, "alice@example.com", "password123")
	token := testutil.MintTestToken(t, userID, "alice@example.com")

	t.Run("with valid token", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/auth/me", nil,
			map[string]string{"Authorization": "Bearer " + token})
		w := httptest.NewRecorder()

		handler.Me(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SessionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.UserID != userID {
			t.Errorf("expected user_id %q, got %q", userID, resp.UserID)
		}
	})

	t.Run("without token", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/auth/me", nil, nil)
		w := httptest.NewRecorder()

		handler.Me(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}
