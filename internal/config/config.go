package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Twitter app credentials (from the developer portal)
	ConsumerKey    string
	ConsumerSecret string

	// User credentials; empty until the login handshake has run once
	AccessToken       string
	AccessTokenSecret string

	// Database
	DatabasePath string

	// HTTP
	RequestTimeout time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		ConsumerKey:       getEnv("TWITTER_CONSUMER_KEY", ""),
		ConsumerSecret:    getEnv("TWITTER_CONSUMER_SECRET", ""),
		AccessToken:       getEnv("TWITTER_ACCESS_TOKEN", ""),
		AccessTokenSecret: getEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),
		DatabasePath:      getEnv("DATABASE_PATH", "data/chirp.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.RequestTimeout, err = time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.ConsumerKey == "" {
		return fmt.Errorf("TWITTER_CONSUMER_KEY is required")
	}
	if c.ConsumerSecret == "" {
		return fmt.Errorf("TWITTER_CONSUMER_SECRET is required")
	}
	return nil
}

// ValidateForLogin checks configuration needed for the authorization
// handshake. Only the consumer pair is needed; the access token is what
// login produces.
func (c *Config) ValidateForLogin() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForPosting checks configuration needed to publish. The access
// token may come from the environment or from a stored login, so its
// absence here is not an error; callers fall back to the store.
func (c *Config) ValidateForPosting() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// HasAccessToken reports whether a full access-token pair came from the
// environment.
func (c *Config) HasAccessToken() bool {
	return c.AccessToken != "" && c.AccessTokenSecret != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
