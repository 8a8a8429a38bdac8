package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	DatabaseURL    string // Postgres DSN; when set it takes precedence over DatabasePath
	AllowedOrigins []string
	AuthEnabled    bool
	TokenTTL       time.Duration
	PasswordHasher string
	LogLevel       string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first, if present; variables
// already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	authEnabled, err := strconv.ParseBool(getEnv("AUTH_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_ENABLED: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: must be positive, got %s", ttl)
	}

	hasher := strings.ToLower(getEnv("PASSWORD_HASHER", "sha256"))
	if hasher != "sha256" && hasher != "bcrypt" {
		return nil, fmt.Errorf("invalid PASSWORD_HASHER %q: expected sha256 or bcrypt", hasher)
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./contactos.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://127.0.0.1:5000")),
		AuthEnabled:    authEnabled,
		TokenTTL:       ttl,
		PasswordHasher: hasher,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

// DSN returns the data source the database package should open.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DatabasePath
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
