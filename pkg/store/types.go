package store

import "time"

// User is a banned user record.
type User struct {
	UserID         int64
	BanReason      *string
	AdditionalInfo *string
	CreatedAt      time.Time

	// LastMessage is the text of the user's most recent message. Only
	// populated by UsersForDump.
	LastMessage string
}

// Message is a spam message attributed to a banned user.
type Message struct {
	ID     int64
	UserID int64
	Text   string
}
