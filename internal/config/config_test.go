package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_GeneratesEphemeralJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dinetap_test")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoad_KeepsConfiguredJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dinetap_test")
	t.Setenv("JWT_SECRET", "configured-secret")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "configured-secret", cfg.JWTSecret)
}
