package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derdiedas/internal/security"
)

func TestHandleHashToken(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, handleHashToken(&out, "s3cret"))

	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, "ADMIN_TOKEN_HASH="))
	assert.True(t, security.CheckToken(strings.TrimPrefix(line, "ADMIN_TOKEN_HASH="), "s3cret"))
}

func TestHandleHashTokenGenerates(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, handleHashToken(&out, ""))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	token := strings.TrimPrefix(lines[0], "token: ")
	hash := strings.TrimPrefix(lines[1], "ADMIN_TOKEN_HASH=")
	assert.True(t, security.CheckToken(hash, token))
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirm(strings.NewReader("yes\n"), &out))
	assert.False(t, confirm(strings.NewReader("y\n"), &out))
	assert.False(t, confirm(strings.NewReader(""), &out))
}

func TestIsCSV(t *testing.T) {
	assert.True(t, isCSV("data/nouns.CSV"))
	assert.False(t, isCSV("backup.json"))
}
