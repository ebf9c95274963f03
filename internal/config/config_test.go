package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env and restore after test
	origEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, e := range origEnv {
			for i := 0; i < len(e); i++ {
				if e[i] == '=' {
					os.Setenv(e[:i], e[i+1:])
					break
				}
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/chirp.db", cfg.DatabasePath)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Empty(t, cfg.ConsumerKey)
		assert.False(t, cfg.HasAccessToken())
	})

	t.Run("custom values", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("TWITTER_CONSUMER_KEY", "ck")
		os.Setenv("TWITTER_CONSUMER_SECRET", "cs")
		os.Setenv("TWITTER_ACCESS_TOKEN", "at")
		os.Setenv("TWITTER_ACCESS_TOKEN_SECRET", "ats")
		os.Setenv("DATABASE_PATH", "/custom/path.db")
		os.Setenv("REQUEST_TIMEOUT", "10s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "ck", cfg.ConsumerKey)
		assert.Equal(t, "cs", cfg.ConsumerSecret)
		assert.Equal(t, "/custom/path.db", cfg.DatabasePath)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.HasAccessToken())
	})

	t.Run("invalid duration", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("REQUEST_TIMEOUT", "invalid")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{ConsumerKey: "ck", ConsumerSecret: "cs"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing consumer key", func(t *testing.T) {
		cfg := &Config{ConsumerSecret: "cs"}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "TWITTER_CONSUMER_KEY")
	})

	t.Run("missing consumer secret", func(t *testing.T) {
		cfg := &Config{ConsumerKey: "ck"}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "TWITTER_CONSUMER_SECRET")
	})
}

func TestConfig_ValidateForLogin(t *testing.T) {
	t.Run("valid without access token", func(t *testing.T) {
		cfg := &Config{
			ConsumerKey:    "ck",
			ConsumerSecret: "cs",
			DatabasePath:   "test.db",
		}
		assert.NoError(t, cfg.ValidateForLogin())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := &Config{ConsumerKey: "ck", ConsumerSecret: "cs"}
		err := cfg.ValidateForLogin()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_PATH")
	})
}

func TestConfig_HasAccessToken(t *testing.T) {
	t.Run("both set", func(t *testing.T) {
		cfg := &Config{AccessToken: "at", AccessTokenSecret: "ats"}
		assert.True(t, cfg.HasAccessToken())
	})

	t.Run("only token", func(t *testing.T) {
		cfg := &Config{AccessToken: "at"}
		assert.False(t, cfg.HasAccessToken())
	})
}
