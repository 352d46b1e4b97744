// Package storage defines the facade interface every persistence backend
// implements, the shared error taxonomy, and the backend selector used by
// the factory. Backends live in subpackages and share no implementation;
// the service layer only ever sees this interface.
package storage

import (
	"context"
	"fmt"

	"uservault/internal/models"
)

// Stats is a backend self-report. It always contains at least
// StatUserCount (int) and StatBackendType (string); anything else is
// advisory and backend-specific.
type Stats map[string]any

// Keys present in every Stats map.
const (
	StatUserCount   = "userCount"
	StatBackendType = "backendType"
)

// Storage describes CRUD and query operations for User records.
// Implementations must provide each write as one atomic unit, so a
// duplicate check and the insert it guards can never interleave with
// another writer.
type Storage interface {
	// SaveUser persists a new record and echoes it back unchanged.
	// It fails with ErrDuplicateUser if a live record already has the
	// same email (exact, case-sensitive match).
	SaveUser(ctx context.Context, user *models.User) (*models.User, error)

	// FindUserByEmail returns the record with the exact email, or
	// (nil, nil) if there is none.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// FindUserByID returns the record with the given id, or (nil, nil).
	FindUserByID(ctx context.Context, id string) (*models.User, error)

	// GetAllUsers returns an unordered snapshot of all records.
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser replaces username, email and password of the record with
	// the given id, keeping id and CreatedAt as stored. It fails with
	// ErrUserNotFound if the id is absent and ErrDuplicateUser if the new
	// email belongs to a different record.
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)

	// DeleteUser removes the record with the given id. It reports whether
	// a record existed; a missing id is not an error.
	DeleteUser(ctx context.Context, id string) (bool, error)

	// UserExists reports whether a record with the exact email exists.
	UserExists(ctx context.Context, email string) (bool, error)

	// Stats returns the backend self-report.
	Stats(ctx context.Context) (Stats, error)

	// Close releases backend resources. Safe to call more than once.
	Close() error
}

// BackendType selects a concrete storage engine.
type BackendType string

const (
	BackendInMemory   BackendType = "inmemory"
	BackendEmbedded   BackendType = "embedded"
	BackendRelational BackendType = "relational"
)

// DefaultBackend is the single point of default-backend selection.
// Switching the production engine is a change to this line only.
const DefaultBackend = BackendRelational

// ParseBackendType validates a configuration tag.
func ParseBackendType(s string) (BackendType, error) {
	switch t := BackendType(s); t {
	case BackendInMemory, BackendEmbedded, BackendRelational:
		return t, nil
	default:
		return "", fmt.Errorf("unknown backend type %q", s)
	}
}
