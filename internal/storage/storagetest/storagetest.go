// Package storagetest holds the conformance suite every storage backend
// must pass. The in-memory backend defines the expected behavior; the
// embedded and relational backends run the identical suite so the service
// layer can treat them interchangeably.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uservault/internal/models"
	"uservault/internal/storage"
)

// Factory returns a fresh, empty backend for one test. The factory is
// responsible for cleanup via t.Cleanup.
type Factory func(t *testing.T) storage.Storage

func newUser(id, username, email string) *models.User {
	return &models.User{
		ID:        id,
		Username:  username,
		Email:     email,
		Password:  "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		CreatedAt: time.Date(2024, 5, 17, 10, 30, 0, 123456789, time.UTC),
	}
}

// Run executes the full conformance suite against backends built by open.
func Run(t *testing.T, open Factory) {
	t.Run("RoundTrip", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		u := newUser("id-1", "alice", "alice@example.com")
		saved, err := s.SaveUser(ctx, u)
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)

		got, err := s.FindUserByID(ctx, "id-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.Username, got.Username)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, u.Password, got.Password)
		assert.True(t, u.CreatedAt.Equal(got.CreatedAt), "CreatedAt drifted: want %v, got %v", u.CreatedAt, got.CreatedAt)

		byEmail, err := s.FindUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, u.ID, byEmail.ID)
	})

	t.Run("DuplicateEmailRejected", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.SaveUser(ctx, newUser("id-1", "alice", "alice@example.com"))
		require.NoError(t, err)

		_, err = s.SaveUser(ctx, newUser("id-2", "impostor", "alice@example.com"))
		require.ErrorIs(t, err, storage.ErrDuplicateUser)

		// only the first record survives
		all, err := s.GetAllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "alice", all[0].Username)
	})

	t.Run("EmailComparisonIsCaseSensitive", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.SaveUser(ctx, newUser("id-1", "lower", "user@example.com"))
		require.NoError(t, err)
		_, err = s.SaveUser(ctx, newUser("id-2", "upper", "User@example.com"))
		require.NoError(t, err)

		got, err := s.FindUserByEmail(ctx, "User@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "upper", got.Username)
	})

	t.Run("AbsenceIsNotAnError", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		got, err := s.FindUserByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = s.FindUserByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)

		exists, err := s.UserExists(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("UpdatePreservesIdentity", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		orig := newUser("id-1", "alice", "alice@example.com")
		_, err := s.SaveUser(ctx, orig)
		require.NoError(t, err)

		updated, err := s.UpdateUser(ctx, &models.User{
			ID:        "id-1",
			Username:  "alice2",
			Email:     "alice2@example.com",
			Password:  "fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210",
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, "id-1", updated.ID)
		assert.Equal(t, "alice2", updated.Username)
		assert.Equal(t, "alice2@example.com", updated.Email)
		assert.True(t, orig.CreatedAt.Equal(updated.CreatedAt), "update must not touch CreatedAt")

		got, err := s.FindUserByID(ctx, "id-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice2@example.com", got.Email)
		assert.True(t, orig.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("UpdateMissingUser", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.UpdateUser(ctx, newUser("missing", "ghost", "ghost@example.com"))
		require.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("UpdateToTakenEmail", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.SaveUser(ctx, newUser("id-1", "alice", "alice@example.com"))
		require.NoError(t, err)
		_, err = s.SaveUser(ctx, newUser("id-2", "bob", "bob@example.com"))
		require.NoError(t, err)

		_, err = s.UpdateUser(ctx, newUser("id-2", "bob", "alice@example.com"))
		require.ErrorIs(t, err, storage.ErrDuplicateUser)

		// updating a record to its own email is fine
		_, err = s.UpdateUser(ctx, newUser("id-2", "bobby", "bob@example.com"))
		require.NoError(t, err)
	})

	t.Run("DeleteIsIdempotentSafe", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		existed, err := s.DeleteUser(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, existed)

		_, err = s.SaveUser(ctx, newUser("id-1", "alice", "alice@example.com"))
		require.NoError(t, err)

		existed, err = s.DeleteUser(ctx, "id-1")
		require.NoError(t, err)
		assert.True(t, existed)

		existed, err = s.DeleteUser(ctx, "id-1")
		require.NoError(t, err)
		assert.False(t, existed)
	})

	t.Run("StatsReportCountAndType", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		stats, err := s.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats[storage.StatUserCount])
		assert.NotEmpty(t, stats[storage.StatBackendType])

		_, err = s.SaveUser(ctx, newUser("id-1", "alice", "alice@example.com"))
		require.NoError(t, err)
		_, err = s.SaveUser(ctx, newUser("id-2", "bob", "bob@example.com"))
		require.NoError(t, err)

		stats, err = s.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats[storage.StatUserCount])
	})

	t.Run("CloseIsIdempotent", func(t *testing.T) {
		s := open(t)

		require.NoError(t, s.Close())
		require.NoError(t, s.Close())
	})

	t.Run("OperationSequence", func(t *testing.T) {
		// The same save/update/delete/list sequence must leave every
		// backend with the identical final record set.
		s := open(t)
		ctx := context.Background()

		for _, u := range []*models.User{
			newUser("id-1", "alice", "alice@example.com"),
			newUser("id-2", "bob", "bob@example.com"),
			newUser("id-3", "carol", "carol@example.com"),
		} {
			_, err := s.SaveUser(ctx, u)
			require.NoError(t, err)
		}

		_, err := s.UpdateUser(ctx, newUser("id-2", "robert", "robert@example.com"))
		require.NoError(t, err)

		existed, err := s.DeleteUser(ctx, "id-3")
		require.NoError(t, err)
		require.True(t, existed)

		all, err := s.GetAllUsers(ctx)
		require.NoError(t, err)

		got := make(map[string]string, len(all))
		for _, u := range all {
			got[u.ID] = u.Username + "/" + u.Email
		}
		assert.Equal(t, map[string]string{
			"id-1": "alice/alice@example.com",
			"id-2": "robert/robert@example.com",
		}, got)
	})
}
