package models

import "time"

// Validation bounds for poll options
const (
	MinOptions = 2
	MaxOptions = 10
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

type UpdatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

type CastVoteRequest struct {
	OptionIndex int `json:"option_index"`
}

// Response types

type SessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type CreatePollResponse struct {
	PollID string `json:"poll_id"`
}

type CastVoteResponse struct {
	VoteID string `json:"vote_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PollSummary struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VoteCount   int       `json:"vote_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type PollDetail struct {
	Poll       Poll     `json:"poll"`
	Options    []Option `json:"options"`
	VoteCount  int      `json:"vote_count"`
	CreatedAgo string   `json:"created_ago"`
	IsOwner    bool     `json:"is_owner"`
}

type OptionTally struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Votes int    `json:"votes"`
}

type ResultsResponse struct {
	PollID  string        `json:"poll_id"`
	Total   int           `json:"total"`
	Tallies []OptionTally `json:"tallies"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Poll struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnedBy reports whether the given user owns the poll. An empty user ID
// (no identity present) never owns anything. This is the one ownership test
// in the codebase: handlers use it both for the is_owner display flag and as
// the server-side authorization check before update/delete, so the two can
// never disagree.
func (p Poll) OwnedBy(userID string) bool {
	return userID != "" && p.OwnerID == userID
}

type Option struct {
	ID       string `json:"id"`
	PollID   string `json:"poll_id"`
	Position int    `json:"position"`
	Label    string `json:"label"`
}

type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	VoterID     string    `json:"voter_id"`
	OptionIndex int       `json:"option_index"`
	IPHash      *string   `json:"-"` // Never expose in JSON
	CreatedAt   time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
