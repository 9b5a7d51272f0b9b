package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 100, cfg.Product.MaxPageSize)
	assert.Equal(t, 10*time.Second, cfg.Enrichment.Timeout)
	assert.Empty(t, cfg.Enrichment.GeminiAPIKey)
	assert.Equal(t, []string{"http://localhost:8000", "http://127.0.0.1:8000"}, cfg.AllowedOrigins())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-secret")
	t.Setenv("JWT_EXPIRATION_MINUTES", "5")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/catalog.db")
	t.Setenv("ENRICHMENT_TIMEOUT", "250ms")
	t.Setenv("FRONTEND_URL", "https://shop.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/catalog.db", cfg.DB.Path)
	assert.Equal(t, 5*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 250*time.Millisecond, cfg.Enrichment.Timeout)
	assert.Contains(t, cfg.AllowedOrigins(), "https://shop.example.com")
}

func TestFromEnvRequiresSigningKey(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SigningKey")
}

func TestFromEnvRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-secret")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := FromEnv()
	require.Error(t, err)
}
