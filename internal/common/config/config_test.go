package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/app")
	t.Setenv("BOT_TOKEN", "12345:test-bot-token")
	t.Setenv("SESSION_SECRET", strings.Repeat("s", MinSessionSecretLength))
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.Origin)
	assert.Equal(t, 720*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, time.Duration(0), cfg.Telegram.AuthExpiry)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Notify.WebhookSecret)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DEBUG", "true")
	t.Setenv("PORT", "9000")
	t.Setenv("AUTH_EXPIRY", "24h")
	t.Setenv("SESSION_MAX_AGE", "1h")
	t.Setenv("WEBHOOK_SECRET", "hook-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Telegram.AuthExpiry)
	assert.Equal(t, time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, "hook-secret", cfg.Notify.WebhookSecret)
}

func TestLoadRequiresBotToken(t *testing.T) {
	setRequired(t)
	// t.Setenv registers the restore; the variable itself must be absent.
	t.Setenv("BOT_TOKEN", "")
	os.Unsetenv("BOT_TOKEN")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortSessionSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}
