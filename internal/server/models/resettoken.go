package models

import "time"

// ResetToken is a single-use password reset credential. Only the SHA-256
// of the token is stored; the token itself travels in the e-mail.
type ResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	Expires   time.Time
	CreatedAt time.Time
}
