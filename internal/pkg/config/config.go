package config

import (
	"fmt"
	"os"
	"time"
)

type SessionConfig struct {
	CookieName string
	Secret     string
	MaxAge     time.Duration
}

type GoodreadsConfig struct {
	BaseURL string
	Key     string
	Timeout time.Duration
}

type Config struct {
	DatabaseURL string
	ServerPort  string
	Session     SessionConfig
	Goodreads   GoodreadsConfig
}

// Load reads the configuration from the environment. DATABASE_URL is the one
// required variable; startup fails fast without it.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8080"),
		Session: SessionConfig{
			CookieName: getEnvOrDefault("SESSION_COOKIE", "bookery_session"),
			Secret:     getEnvOrDefault("SESSION_SECRET", "change-me-in-production"),
			MaxAge:     24 * time.Hour,
		},
		Goodreads: GoodreadsConfig{
			BaseURL: getEnvOrDefault("GOODREADS_URL", "https://www.goodreads.com"),
			Key:     os.Getenv("GOODREADS_KEY"),
			Timeout: 5 * time.Second,
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
