// Package config provides centralized configuration for noteblue. It loads
// a .env file when present, then environment variables, validates required
// fields, and provides sensible defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	// DataDir is the directory holding persisted notes and categories.
	DataDir string

	// Storage selects the persistence adapter: "json" or "sqlite".
	Storage string

	// DBKey optionally encrypts the sqlite database (SQLCipher).
	// Ignored by the json backend.
	DBKey string

	// ListenAddr is the HTTP API listen address for `noteblue serve`.
	ListenAddr string
}

// ValidationError represents a configuration validation error with
// multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Load reads configuration from .env (if present) and environment
// variables, then validates it.
func Load() (*Config, error) {
	// Missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:    getEnvOrDefault("NOTEBLUE_DATA_DIR", "./data"),
		Storage:    strings.ToLower(getEnvOrDefault("NOTEBLUE_STORAGE", StorageJSON)),
		DBKey:      os.Getenv("NOTEBLUE_DB_KEY"),
		ListenAddr: getEnvOrDefault("LISTEN_ADDR", ":8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, "NOTEBLUE_DATA_DIR must not be empty")
	}
	if c.Storage != StorageJSON && c.Storage != StorageSQLite {
		errs = append(errs, fmt.Sprintf("NOTEBLUE_STORAGE must be %q or %q, got %q", StorageJSON, StorageSQLite, c.Storage))
	}
	if c.DBKey != "" && c.Storage != StorageSQLite {
		errs = append(errs, "NOTEBLUE_DB_KEY is only valid with NOTEBLUE_STORAGE=sqlite")
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, "LISTEN_ADDR must not be empty")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
