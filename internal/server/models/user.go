// Package models defines the records the backend persists.
package models

import "time"

// User is an account. Email is stored lower-cased and is unique.
type User struct {
	ID              string
	Name            string
	Email           string
	PhoneNo         string
	PasswordHash    string
	ProfilePhotoURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
