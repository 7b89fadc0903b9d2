package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, WordSourceDatabase, cfg.WordSource)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 120, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_TYPE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://drill@localhost/drill?sslmode=disable")
	t.Setenv("WORD_SOURCE", "csv")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("RAND_SEED", "42")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, WordSourceCSV, cfg.WordSource)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, int64(42), cfg.RandSeed)
	assert.True(t, cfg.Debug)
}

func TestLoadRejectsInvalidCombinations(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without url", env: map[string]string{"DATABASE_TYPE": "postgres"}},
		{name: "unknown database", env: map[string]string{"DATABASE_TYPE": "oracle"}},
		{name: "url source without url", env: map[string]string{"WORD_SOURCE": "url"}},
		{name: "unknown word source", env: map[string]string{"WORD_SOURCE": "ftp"}},
		{name: "zero session ttl", env: map[string]string{"SESSION_TTL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
