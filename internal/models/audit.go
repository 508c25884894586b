package models

import "time"

// LoginRecord is one line of the login-history audit log.
type LoginRecord struct {
	EntryID   string    `json:"entry_id"`
	UserID    string    `json:"user_id"`
	Role      UserKind  `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}
