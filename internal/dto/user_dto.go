package dto

import (
	"time"

	"github.com/google/uuid"
)

// RosterEntry is one chat partner shown in the user list. Field names match
// the directory wire layout so clients can reuse the same decoder.
type RosterEntry struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type UserProfileResponse struct {
	Id            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Status        string    `json:"status"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}
