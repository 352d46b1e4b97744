// Package bolt implements the storage facade on top of bbolt, an embedded
// schema-less key/value store. Each user is one JSON-encoded object keyed
// by id in a single bucket; email lookups are cursor scans. Every mutation
// runs inside one bbolt write transaction, so the duplicate check and the
// write it guards are atomic with respect to other writers.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"uservault/internal/models"
	"uservault/internal/storage"
)

var bucketUsers = []byte("users")

// Storage wraps an open bbolt database file.
type Storage struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the database file at path and ensures
// the users bucket exists. Failures map to ErrConnectionFailed.
func Open(path string) (*Storage, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrConnectionFailed, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUsers)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", storage.ErrConnectionFailed, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) SaveUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUsers)

		if id := findIDByEmail(b, user.Email); id != "" {
			return storage.ErrDuplicateUser
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSaveFailed, err)
		}
		if err := b.Put([]byte(user.ID), data); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSaveFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var found *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketUsers).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var u models.User
			if err := json.Unmarshal(v, &u); err != nil {
				return fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
			}
			if u.Email == email {
				found = &u
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *Storage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var found *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketUsers).Get([]byte(id))
		if v == nil {
			return nil
		}
		var u models.User
		if err := json.Unmarshal(v, &u); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
		}
		found = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *Storage) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var result []models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUsers).ForEach(func(k, v []byte) error {
			var u models.User
			if err := json.Unmarshal(v, &u); err != nil {
				return fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
			}
			result = append(result, u)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	var updated models.User

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUsers)

		v := b.Get([]byte(user.ID))
		if v == nil {
			return storage.ErrUserNotFound
		}
		var stored models.User
		if err := json.Unmarshal(v, &stored); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
		}

		if id := findIDByEmail(b, user.Email); id != "" && id != user.ID {
			return storage.ErrDuplicateUser
		}

		stored.Username = user.Username
		stored.Email = user.Email
		stored.Password = user.Password

		data, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSaveFailed, err)
		}
		if err := b.Put([]byte(stored.ID), data); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSaveFailed, err)
		}

		updated = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id string) (bool, error) {
	existed := false

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		if b.Get([]byte(id)) == nil {
			return nil
		}
		if err := b.Delete([]byte(id)); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrDeleteFailed, err)
		}
		existed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}

func (s *Storage) UserExists(ctx context.Context, email string) (bool, error) {
	u, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (s *Storage) Stats(ctx context.Context) (storage.Stats, error) {
	var count int

	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketUsers).Stats().KeyN
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
	}

	return storage.Stats{
		storage.StatUserCount:   count,
		storage.StatBackendType: string(storage.BackendEmbedded),
	}, nil
}

// Close releases the file lock. bbolt treats closing an already-closed
// database as a no-op.
func (s *Storage) Close() error {
	return s.db.Close()
}

// findIDByEmail scans the bucket for a record with the exact email and
// returns its id, or "" if none matches. Must run inside a transaction.
func findIDByEmail(b *bbolt.Bucket, email string) string {
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var u models.User
		if err := json.Unmarshal(v, &u); err != nil {
			continue
		}
		if u.Email == email {
			return u.ID
		}
	}
	return ""
}
