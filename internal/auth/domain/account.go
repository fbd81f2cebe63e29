package domain

import "time"

// Account is the per-user identity record. PasswordHash is an Argon2id PHC
// string; neither it nor anything inside MFA is ever serialized to a client
// response.
type Account struct {
	ID           string
	Email        string // unique, case-sensitive as stored
	FirstName    string
	LastName     string
	PasswordHash string
	MFA          MFAState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
