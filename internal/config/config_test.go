package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30, cfg.TokenTTLMinutes)
}

func TestNewConfigReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("TOKEN_TTL_MINUTES", "5")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 5, cfg.TokenTTLMinutes)
}

func TestNewConfigRejectsBadValues(t *testing.T) {
	t.Run("non-numeric ttl", func(t *testing.T) {
		t.Setenv("TOKEN_TTL_MINUTES", "soon")
		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		t.Setenv("TOKEN_TTL_MINUTES", "0")
		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		t.Setenv("JWT_ALGORITHM", "RS256")
		_, err := NewConfig()
		assert.Error(t, err)
	})
}
