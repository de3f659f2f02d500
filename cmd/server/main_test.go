package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-at-least-16-chars!!")
	for _, key := range []string{"PORT", "DB_PATH", "MONGO_URI", "MONGO_DATABASE", "TOKEN_TTL", "SESSION_BACKEND", "SECURE_COOKIES", "BCRYPT_COST"} {
		t.Setenv(key, "")
	}

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "data/restaurants.db", cfg.DBPath)
	assert.Equal(t, "restaurants", cfg.MongoDatabase)
	assert.Equal(t, "store", cfg.SessionBackend)
	assert.Zero(t, cfg.TokenTTL)
	assert.False(t, cfg.SecureCookies)
	assert.Zero(t, cfg.BcryptCost)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-at-least-16-chars!!")
	t.Setenv("PORT", "8081")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret": {"JWT_SECRET": ""},
		"bad port":       {"PORT": "http"},
		"bad ttl":        {"TOKEN_TTL": "a day"},
		"bad secure":     {"SECURE_COOKIES": "maybe"},
		"bad cost":       {"BCRYPT_COST": "high"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret-at-least-16-chars!!")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := loadConfig()
			assert.Error(t, err)
		})
	}
}
