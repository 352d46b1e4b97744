package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uservault/internal/models"
	"uservault/internal/storage"
	"uservault/internal/storage/storagetest"
)

func openTestStore(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(context.Background(), InMemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return openTestStore(t)
	})
}

func TestRecordsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)

	u := models.NewUser("alice", "alice@example.com", "digest")
	_, err = s.SaveUser(ctx, u)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening reruns goose against an already-migrated file; applied
	// steps are tracked and must not run twice.
	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.Password, got.Password)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))
}

func TestUniqueConstraintBacksDuplicateCheck(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := models.NewUser("alice", "alice@example.com", "digest")
	_, err := s.SaveUser(ctx, u)
	require.NoError(t, err)

	// Bypass the backend's own check: the engine-level UNIQUE constraint
	// is the second line of defense.
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, password, created_at) VALUES (?, ?, ?, ?, ?)`,
		"other-id", u.Email, "impostor", "digest", formatTime(u.CreatedAt))
	require.Error(t, err)
}

func TestTimestampRoundTrip(t *testing.T) {
	orig := models.NewUser("alice", "alice@example.com", "digest").CreatedAt

	ts, err := parseTime(formatTime(orig))
	require.NoError(t, err)
	assert.True(t, orig.Equal(ts))
}
