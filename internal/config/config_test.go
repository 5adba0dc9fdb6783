package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.UsingDefaultSecrets())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("JWT_SECRET_KEY", "real-access-secret")
	t.Setenv("JWT_REFRESH_SECRET_KEY", "real-refresh-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("ALLOWED_ORIGINS", "https://cinefiles.app, https://staging.cinefiles.app")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.UsingDefaultSecrets())
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t,
		[]string{"https://cinefiles.app", "https://staging.cinefiles.app"},
		cfg.AllowedOrigins)
}

func TestLoadIgnoresMalformedTTL(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "soon")

	cfg := Load()
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
}
