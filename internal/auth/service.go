package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	"uservault/internal/logging"
	"uservault/internal/models"
	"uservault/internal/storage"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 6

// emailPattern is the address grammar registration validates against:
// local part, "@", domain with at least one dot, no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service is the stateless business-logic layer. It holds exactly one
// injected storage facade and never constructs a backend itself, which is
// what keeps it agnostic of the active engine.
type Service struct {
	store  storage.Storage
	logger logging.Logger
}

// NewService returns a Service bound to the given facade.
func NewService(store storage.Storage, logger logging.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// DigestPassword returns the lowercase hex SHA-256 of the UTF-8 password
// bytes. There is no salt and no stretching: identical plaintexts always
// produce identical digests.
func DigestPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register validates the input, digests the password and persists a new
// user. Validation failures never reach storage.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", ErrUnknown)
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	user := models.NewUser(username, email, DigestPassword(password))

	saved, err := s.store.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUser) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}

	s.logger.Info(ctx, "user registered", "id", saved.ID, "email", saved.Email)
	return saved, nil
}

// Login looks the user up by email and compares digests.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	digest := DigestPassword(password)
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(digest)) != 1 {
		s.logger.Warn(ctx, "login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	s.logger.Debug(ctx, "login accepted", "id", user.ID)
	return user, nil
}

// GetAllUsers returns the full record snapshot from the active backend.
func (s *Service) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return users, nil
}

// UpdateUser replaces username, email and password of an existing record.
func (s *Service) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	updated, err := s.store.UpdateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, storage.ErrDuplicateUser):
			return nil, ErrUserAlreadyExists
		default:
			return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
		}
	}
	return updated, nil
}

// DeleteUser removes a record by id and reports whether it existed.
func (s *Service) DeleteUser(ctx context.Context, id string) (bool, error) {
	existed, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return existed, nil
}

// UserExists reports whether a record with the exact email exists.
func (s *Service) UserExists(ctx context.Context, email string) (bool, error) {
	exists, err := s.store.UserExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return exists, nil
}

// Stats passes the backend self-report through.
func (s *Service) Stats(ctx context.Context) (storage.Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return stats, nil
}

// Close releases the underlying backend.
func (s *Service) Close() error {
	return s.store.Close()
}
