package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings, read from environment variables.
type Config struct {
	Port        string
	DatabaseDSN string

	GeminiAPIKey string

	JWTSecret string
	JWTExpiry time.Duration

	UploadDir string

	DriverPoolSize int
	Headless       bool

	Development bool
}

// Load reads the configuration from the environment. DATABASE_DSN and
// JWT_SECRET are required; everything else has a sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      24 * time.Hour,
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		DriverPoolSize: getEnvInt("DRIVER_POOL_SIZE", 3),
		Headless:       getEnvBool("DRIVER_HEADLESS", true),
		Development:    getEnvBool("DEVELOPMENT", false),
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse JWT_EXPIRY: %w", err)
		}
		cfg.JWTExpiry = d
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
