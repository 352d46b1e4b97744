package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	before := time.Now().UTC()
	u := NewUser("alice", "alice@example.com", "digest")
	after := time.Now().UTC()

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "digest", u.Password)
	assert.False(t, u.CreatedAt.Before(before))
	assert.False(t, u.CreatedAt.After(after))

	other := NewUser("alice", "alice@example.com", "digest")
	assert.NotEqual(t, u.ID, other.ID, "ids must be unique per record")
}
