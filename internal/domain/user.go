package domain

import "time"

// User is a Credential Store row. Email matching is exact and case-sensitive.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the password-free view of a User used after token verification.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
}
