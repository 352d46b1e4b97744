package storage

import "errors"

// Sentinel errors shared by every backend. Callers match them with
// errors.Is; backends wrap them with fmt.Errorf("%w: %w", sentinel, cause)
// so the underlying engine error stays inspectable.
var (
	// ErrConnectionFailed indicates the backend could not be opened or the
	// underlying connection was lost.
	ErrConnectionFailed = errors.New("storage connection failed")

	// ErrSaveFailed indicates an insert or update could not be persisted.
	ErrSaveFailed = errors.New("save failed")

	// ErrDeleteFailed indicates a delete could not be performed.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrQueryFailed indicates a read failed for a reason other than absence.
	// Absence itself is never an error: FindUserBy* return (nil, nil) and
	// DeleteUser returns false.
	ErrQueryFailed = errors.New("query failed")

	// ErrUserNotFound is returned by UpdateUser when no record matches the id.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when a write would leave two live records
	// with the same email.
	ErrDuplicateUser = errors.New("user with this email already exists")

	// ErrMigrationFailed is returned by the cross-backend migration when one
	// or more records could not be transferred.
	ErrMigrationFailed = errors.New("migration failed")

	// ErrUnknown covers failures no other sentinel describes.
	ErrUnknown = errors.New("unknown storage error")
)
