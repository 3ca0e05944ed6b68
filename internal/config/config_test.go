package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
app:
  name: kinobot
  environment: test
telegram:
  bot_token: "123:abc"
storage:
  movies_path: data/movies.json
  bookings_path: data/bookings.json
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "kinobot", cfg.App.Name)
	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Equal(t, "data/movies.json", cfg.Storage.MoviesPath)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, "data/users.db", cfg.Database.Path)
	assert.Equal(t, "exports", cfg.Exports.Path)
	assert.Equal(t, 20, cfg.Bot.SeatCount)
	assert.Equal(t, 20, cfg.Bot.RateLimitMessages)
	assert.Equal(t, 60, cfg.Bot.RateLimitWindow)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "456:def")

	content := `
telegram:
  bot_token: "${TEST_BOT_TOKEN}"
storage:
  movies_path: data/movies.json
  bookings_path: data/bookings.json
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, "456:def", cfg.Telegram.BotToken)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateMissingToken(t *testing.T) {
	content := `
storage:
  movies_path: data/movies.json
  bookings_path: data/bookings.json
`
	_, err := Load(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram bot token")
}

func TestValidateMissingStoragePaths(t *testing.T) {
	content := `
telegram:
  bot_token: "123:abc"
storage:
  movies_path: data/movies.json
`
	_, err := Load(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bookings_path")
}

func TestValidateDuplicateAPIKeys(t *testing.T) {
	content := validConfig + `
api:
  enabled: true
  auth:
    api_keys:
      - key: "k1"
        name: "client-a"
      - key: "k1"
        name: "client-b"
`
	_, err := Load(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate api key")
}

func TestValidateEmptyAPIKey(t *testing.T) {
	content := validConfig + `
api:
  auth:
    api_keys:
      - key: ""
        name: "client-a"
`
	_, err := Load(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{Admins: []int64{1, 42}}

	assert.True(t, cfg.IsAdmin(42))
	assert.False(t, cfg.IsAdmin(2))
}

func TestAPIAuthEnabledByDefaultWhenAPIEnabled(t *testing.T) {
	content := validConfig + `
api:
  enabled: true
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	assert.True(t, cfg.API.Auth.Enabled)
}
