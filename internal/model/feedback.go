package model

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackKind is the user's reaction to a served ad.
type FeedbackKind string

const (
	FeedbackUp    FeedbackKind = "up"
	FeedbackDown  FeedbackKind = "down"
	FeedbackBlock FeedbackKind = "block"
)

// Valid reports whether k is one of the known kinds.
func (k FeedbackKind) Valid() bool {
	switch k {
	case FeedbackUp, FeedbackDown, FeedbackBlock:
		return true
	}
	return false
}

// FeedbackEvent is an immutable record of one user's reaction to one ad.
// At most one exists per (UserID, AdTitle).
type FeedbackEvent struct {
	ID        uuid.UUID    `json:"id"`
	UserID    string       `json:"user_id"`
	AdTitle   string       `json:"ad_title"`
	Feedback  FeedbackKind `json:"feedback"`
	Emotion   string       `json:"emotion"`
	Timestamp time.Time    `json:"timestamp"`
}

// FeedbackFilter narrows a feedback listing. Empty fields match everything.
type FeedbackFilter struct {
	UserID  string
	AdTitle string
}

// FeedbackRequest is the API request body for POST /feedback.
type FeedbackRequest struct {
	UserID   string `json:"user_id"`
	AdTitle  string `json:"ad_title"`
	Feedback string `json:"feedback"`
	Emotion  string `json:"emotion,omitempty"`
}

// FeedbackStats counts feedback kinds across all users for one ad.
type FeedbackStats struct {
	Up    int `json:"up"`
	Down  int `json:"down"`
	Block int `json:"block"`
}

// FeedbackStatus is the outcome of a submission.
type FeedbackStatus string

const (
	FeedbackSuccess   FeedbackStatus = "success"
	FeedbackDuplicate FeedbackStatus = "duplicate"
	FeedbackOptedOut  FeedbackStatus = "opted_out"
)

// FeedbackResult is the API response for POST /feedback.
type FeedbackResult struct {
	Status  FeedbackStatus `json:"status"`
	Message string         `json:"message"`
	Stats   *FeedbackStats `json:"stats,omitempty"`
	Blocked bool           `json:"blocked,omitempty"`
	// Warning is set when the feedback was saved but a secondary write failed.
	Warning string `json:"warning,omitempty"`
}

// BlockAdRequest is the API request body for POST /block_ad.
type BlockAdRequest struct {
	AdTitle string `json:"ad_title"`
}

// BlockAdUserRequest is the API request body for POST /block_ad_user.
type BlockAdUserRequest struct {
	UserID  string `json:"user_id"`
	AdTitle string `json:"ad_title"`
}
