package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, defaultGeocoderBaseURL, cfg.Geocoder.BaseURL)
	assert.Equal(t, 5, cfg.Geocoder.Limit)
	assert.Equal(t, "en", cfg.Geocoder.Language)
	assert.Equal(t, 10*time.Second, cfg.Geocoder.RequestTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.DebounceDelay)
	assert.Equal(t, 2, cfg.Search.MinQueryLength)
	assert.Equal(t, 10*time.Minute, cfg.Session.IdleTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, defaultSelectionStream, cfg.Redis.SelectionStream)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

func TestLoadFile_EnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "GEOCODER_BASE_URL=http://geocoder.local\nSEARCH_DEBOUNCE_MS=150\nREDIS_PORT=6380\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("GEOCODER_LIMIT", "8")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://geocoder.local", cfg.Geocoder.BaseURL)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.DebounceDelay)
	assert.Equal(t, 8, cfg.Geocoder.Limit)
	assert.Equal(t, "localhost:6380", cfg.GetRedisAddr())
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Setenv("GEOCODER_LIMIT", "0")

	cfg, err := LoadFile("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "GEOCODER_LIMIT")
}

func TestLoadFile_RejectsZeroSearchSettings(t *testing.T) {
	t.Run("min query length", func(t *testing.T) {
		t.Setenv("SEARCH_MIN_QUERY_LENGTH", "0")

		cfg, err := LoadFile("")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "SEARCH_MIN_QUERY_LENGTH")
	})

	t.Run("debounce delay", func(t *testing.T) {
		t.Setenv("SEARCH_DEBOUNCE_MS", "0")

		cfg, err := LoadFile("")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "SEARCH_DEBOUNCE_MS")
	})

	t.Run("min query length of one is honoured", func(t *testing.T) {
		t.Setenv("SEARCH_MIN_QUERY_LENGTH", "1")

		cfg, err := LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Search.MinQueryLength)
	})
}
