// Package auth implements the authentication service: validation, password
// digesting and error translation layered on top of the storage facade.
package auth

import "errors"

// Service-level errors. Validation failures are raised before any backend
// call; storage failures are translated exactly once on the way out, so
// callers only ever match against these values.
var (
	// ErrUserAlreadyExists is returned by Register when the email is taken.
	ErrUserAlreadyExists = errors.New("user with this email already exists")

	// ErrInvalidCredentials is returned by Login on a digest mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword is returned when the password is shorter than the
	// required minimum.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrInvalidEmail is returned when the email does not match the
	// address pattern.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrUserNotFound is returned when no record matches the given email
	// or id.
	ErrUserNotFound = errors.New("user not found")

	// ErrDatabase wraps any storage failure that has no more specific
	// translation. The cause stays attached for errors.Is inspection.
	ErrDatabase = errors.New("database error")

	// ErrUnknown covers failures no other value describes.
	ErrUnknown = errors.New("unknown error")
)
