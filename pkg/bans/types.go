package bans

import (
	"time"

	"github.com/yoas/yoas/pkg/store"
)

// createdAtLayout renders the human-readable creation timestamp.
const createdAtLayout = "2006-01-02 15:04:05"

// WelcomeResponse is the welcome text payload.
type WelcomeResponse struct {
	WelcomeText string `json:"welcome_text"`
}

// ErrorResponse is the original API error contract.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a spam message in API payloads.
type MessageResponse struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// UserResponse is the payload returned when a ban is recorded. It carries the
// first (and only) message of the fresh ban.
type UserResponse struct {
	UserID                int64           `json:"user_id"`
	BanReason             *string         `json:"ban_reason"`
	AdditionalInfo        *string         `json:"additional_info"`
	Message               MessageResponse `json:"message"`
	UTCCreatedAt          float64         `json:"utc_created_at"`
	UTCCreatedAtFormatted string          `json:"utc_created_at_formatted"`
}

// UserMessagesResponse is a banned user with all their recorded messages.
type UserMessagesResponse struct {
	UserID                int64             `json:"user_id"`
	BanReason             *string           `json:"ban_reason"`
	AdditionalInfo        *string           `json:"additional_info"`
	Messages              []MessageResponse `json:"messages"`
	UTCCreatedAt          float64           `json:"utc_created_at"`
	UTCCreatedAtFormatted string            `json:"utc_created_at_formatted"`
}

// UserFoundResponse wraps a user lookup. User is omitted when not found.
type UserFoundResponse struct {
	Found bool                  `json:"found"`
	User  *UserMessagesResponse `json:"user,omitempty"`
}

// MessageFoundResponse wraps a message lookup.
type MessageFoundResponse struct {
	Found bool `json:"found"`
}

func toEpoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func newUserResponse(u store.User, m store.Message) UserResponse {
	return UserResponse{
		UserID:                u.UserID,
		BanReason:             u.BanReason,
		AdditionalInfo:        u.AdditionalInfo,
		Message:               MessageResponse{ID: m.ID, Text: m.Text},
		UTCCreatedAt:          toEpoch(u.CreatedAt),
		UTCCreatedAtFormatted: u.CreatedAt.Format(createdAtLayout),
	}
}

func newUserMessagesResponse(u store.User, msgs []store.Message) *UserMessagesResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageResponse{ID: m.ID, Text: m.Text})
	}

	return &UserMessagesResponse{
		UserID:                u.UserID,
		BanReason:             u.BanReason,
		AdditionalInfo:        u.AdditionalInfo,
		Messages:              out,
		UTCCreatedAt:          toEpoch(u.CreatedAt),
		UTCCreatedAtFormatted: u.CreatedAt.Format(createdAtLayout),
	}
}
