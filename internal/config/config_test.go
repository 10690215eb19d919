package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("AUTH_SESSION_TTL_MINUTES", "")
	t.Setenv("ADMIN_SEED_EMAIL", "")
	t.Setenv("ADMIN_SEED_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, "complaint_session", cfg.Auth.CookieName)
	assert.Equal(t, 5*time.Minute, cfg.Flash.TTL())
	assert.False(t, cfg.AdminSeed.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_COOKIE_SECURE", "true")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")
	t.Setenv("ADMIN_SEED_EMAIL", "warden@hostel.test")
	t.Setenv("ADMIN_SEED_PASSWORD", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.App.Addr())
	assert.Equal(t, 5*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, 12, cfg.Auth.BcryptCost, "invalid ints fall back to the default")
	assert.True(t, cfg.AdminSeed.Enabled())
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")

	_, err := Load()
	assert.Error(t, err)
}

func TestRequestTimeoutDisabled(t *testing.T) {
	assert.Zero(t, AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
}
