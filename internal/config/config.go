package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Sessions
	JWTSecret  string
	SessionTTL time.Duration

	// Server
	Port               string
	CORSOrigins        []string
	Env                string
	RateLimitPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		SessionTTL:         sessionTTL,
		Port:               getEnv("PORT", "4000"),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                getEnv("ENV", "development"),
		RateLimitPerMinute: rateLimit,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production settings,
// which among other things makes the session cookie Secure.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
