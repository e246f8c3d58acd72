// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
	"github.com/solomonaboyeji/driving-star-tracker/internal/store"
)

// Config holds all application configuration.
type Config struct {
	Port      string
	DBPath    string // empty means the default XDG location
	RemoteURL string // non-empty switches the CLI to the HTTP repository
	FocusMin  int    // minimum number of focus skills per logged session
	LogJSON   bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DRIVESTAR_DB", ""),
		RemoteURL: getEnv("DRIVESTAR_REMOTE", ""),
		FocusMin:  getEnvInt("DRIVESTAR_FOCUS_MIN", session.DefaultMinFocusSkills),
		LogJSON:   getEnvBool("DRIVESTAR_LOG_JSON", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.FocusMin < 0 {
		return fmt.Errorf("DRIVESTAR_FOCUS_MIN must be >= 0")
	}
	return nil
}

// Repository opens the store the configuration selects: the HTTP client
// when a remote URL is set, the local SQLite database otherwise.
func (c *Config) Repository() (store.Repository, error) {
	if c.RemoteURL != "" {
		return store.NewRemote(c.RemoteURL), nil
	}
	path := c.DBPath
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, err
		}
	} else if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	return store.OpenSQLite(path)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
