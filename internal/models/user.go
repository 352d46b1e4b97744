// Package models defines the user entity shared by all storage backends.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a stored credential record. It is a pure value object: backends
// copy it in and out, and no field refers back to any storage engine.
type User struct {
	// ID is a globally unique identifier, generated at creation and
	// immutable afterwards.
	ID string

	// Username is a display name. The service layer requires it to be
	// non-empty at creation; storage does not enforce this.
	Username string

	// Email identifies the user within a backend. Comparison is exact and
	// case-sensitive: no two live records in one backend share an email.
	Email string

	// Password holds a lowercase hex digest, never plaintext.
	Password string

	// CreatedAt is set once at creation and never touched by updates.
	CreatedAt time.Time
}

// NewUser returns a User with a fresh id and creation timestamp.
// The password must already be digested by the caller.
func NewUser(username, email, password string) *User {
	return &User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
}
