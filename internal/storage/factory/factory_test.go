package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uservault/internal/storage"
	"uservault/internal/storage/sqlite"
)

func TestOpenEachBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	opts := Options{
		SQLitePath: sqlite.InMemoryDSN,
		BoltPath:   filepath.Join(dir, "users.bolt"),
	}

	for _, tt := range []struct {
		backend storage.BackendType
		want    string
	}{
		{storage.BackendInMemory, "inmemory"},
		{storage.BackendEmbedded, "embedded"},
		{storage.BackendRelational, "relational"},
	} {
		t.Run(string(tt.backend), func(t *testing.T) {
			s, err := Open(ctx, tt.backend, opts)
			require.NoError(t, err)
			defer s.Close()

			stats, err := s.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stats[storage.StatBackendType])
			assert.Equal(t, 0, stats[storage.StatUserCount])
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), storage.BackendType("cloud"), Options{})
	require.Error(t, err)
}

func TestParseBackendType(t *testing.T) {
	for _, tag := range []string{"inmemory", "embedded", "relational"} {
		got, err := storage.ParseBackendType(tag)
		require.NoError(t, err)
		assert.Equal(t, storage.BackendType(tag), got)
	}

	_, err := storage.ParseBackendType("mongo")
	assert.Error(t, err)
}
