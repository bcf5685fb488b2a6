// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resalex/backend/internal/utils"
)

func TestLoadFallsBackToDevJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, utils.DevJWTSecret, cfg.JWT.SecretKey)
}

func TestValidateRejectsDevJWTSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "something")
	t.Setenv("ROOT_PASSWORD", "something-else")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRateLimitDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("RATE_LIMIT_GENERAL_PER_SECOND", "")
	t.Setenv("RATE_LIMIT_AUTH_PER_MINUTE", "20")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.RateLimit.GeneralPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.AuthPerMinute)
	assert.Equal(t, 10, cfg.RateLimit.UploadPerMinute)
}
