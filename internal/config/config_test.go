package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "podcast")
	t.Setenv("ADMIN_API_KEY", "admin-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "default", cfg.DefaultGamblingLookup)
	assert.Equal(t, 10*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, "PODCAST_EVENTS", cfg.NATSStream)
	assert.Empty(t, cfg.NATSURL)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("WEBHOOK_TIMEOUT", "3s")
	t.Setenv("DEFAULT_GAMBLING_LOOKUP", "spin")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, "spin", cfg.DefaultGamblingLookup)
}

func TestLoadMissingAdminKey(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}
