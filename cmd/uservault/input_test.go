package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  alice \n"))

	got, err := promptLine(reader, "Username", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
	assert.Equal(t, "Username: ", out.String())
}

func TestPromptLineEOFWithPartialInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("alice"))

	got, err := promptLine(reader, "Username", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestPromptPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("secret1"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	got, err := promptPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", got)
	assert.Contains(t, out.String(), "Password: ")
}

func TestNonFlagArgs(t *testing.T) {
	got := nonFlagArgs([]string{"embedded", "relational", "-d", "alt.db", "-v", "-f=alt.bolt"})
	assert.Equal(t, []string{"embedded", "relational"}, got)
}
