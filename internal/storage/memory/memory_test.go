package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uservault/internal/models"
	"uservault/internal/storage"
	"uservault/internal/storage/storagetest"
)

func TestConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		s := New()
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestConcurrentSaves(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			u := models.NewUser(
				fmt.Sprintf("user%d", i),
				fmt.Sprintf("user%d@example.com", i),
				"digest")
			_, err := s.SaveUser(ctx, u)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}

func TestCloseClearsRecords(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.SaveUser(ctx, models.NewUser("alice", "alice@example.com", "digest"))
	require.NoError(t, err)

	require.NoError(t, s.Close())

	all, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := models.NewUser("alice", "alice@example.com", "digest")
	_, err := s.SaveUser(ctx, u)
	require.NoError(t, err)

	got, err := s.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	got.Username = "mutated"

	again, err := s.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
}
