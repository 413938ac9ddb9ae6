// Package config reads the application settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when a variable is unset or empty.
const (
	DefaultPort          = "8080"
	DefaultDBPath        = "data/diary.db"
	DefaultLogLevel      = "info"
	DefaultAutoSaveDelay = 300 * time.Millisecond
)

// Config holds all configuration for the application.
type Config struct {
	Port          string
	DBPath        string
	LogLevel      slog.Level
	AutoSaveDelay time.Duration
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present; variables already set in
// the environment take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults and validating values.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:   get("PORT", DefaultPort),
		DBPath: get("DB_PATH", DefaultDBPath),
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", DefaultLogLevel))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg.AutoSaveDelay = DefaultAutoSaveDelay
	if raw := get("AUTOSAVE_DELAY", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("AUTOSAVE_DELAY must be a duration like 300ms: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("AUTOSAVE_DELAY must be positive, got %s", d)
		}
		cfg.AutoSaveDelay = d
	}

	return cfg, nil
}
