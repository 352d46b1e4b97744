// Package memory implements the storage facade with an in-process map.
// It never persists beyond the process lifetime and doubles as the
// reference implementation for the backend conformance suite.
package memory

import (
	"context"
	"sync"

	"uservault/internal/models"
	"uservault/internal/storage"
)

// Storage keeps all records in an id-keyed map guarded by a mutex, so it
// is safe for concurrent use. Email lookups are linear scans.
type Storage struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// New returns an empty in-memory backend.
func New() *Storage {
	return &Storage{users: make(map[string]models.User)}
}

func (s *Storage) SaveUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, storage.ErrDuplicateUser
		}
	}

	s.users[user.ID] = *user
	return user, nil
}

func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Storage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	found := u
	return &found, nil
}

func (s *Storage) GetAllUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u)
	}
	return result, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	for id, u := range s.users {
		if id != user.ID && u.Email == user.Email {
			return nil, storage.ErrDuplicateUser
		}
	}

	stored.Username = user.Username
	stored.Email = user.Email
	stored.Password = user.Password
	s.users[user.ID] = stored

	result := stored
	return &result, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *Storage) UserExists(ctx context.Context, email string) (bool, error) {
	u, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (s *Storage) Stats(ctx context.Context) (storage.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return storage.Stats{
		storage.StatUserCount:   len(s.users),
		storage.StatBackendType: string(storage.BackendInMemory),
	}, nil
}

// Close clears the map. Subsequent operations see an empty store.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]models.User)
	return nil
}
