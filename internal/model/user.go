package model

import "time"

// User represents an account record as stored in the `users` table.  The
// password hash is tagged json:"-" so it can never leak into a response;
// handlers return users directly.
//
// Fields:
//
//	ID           – primary key identifier of the account.
//	Name         – display name shown to other users.
//	Email        – unique email address, stored lower-cased.
//	PasswordHash – bcrypt hashed password, never serialized.
//	CreatedAt    – timestamp of registration.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
