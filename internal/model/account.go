package model

// AccountID uniquely identifies an account across the system
type AccountID string

// Account represents a registered user identity.
//
// The JSON tags match the persisted storage layout: the password field is
// stored under "passwordHash" even though it is a reversible encoding rather
// than a real hash (a documented weakness of the stored format, kept for
// compatibility with existing data).
type Account struct {
	ID             AccountID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordSecret string    `json:"passwordHash"`
	ProfileImage   string    `json:"profilePicture,omitempty"`
}

// ProfileUpdate describes a partial update to an account's profile fields.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	Name         *string
	ProfileImage *string
}
