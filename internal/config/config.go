// Package config loads lectern's settings. Values come from defaults, then
// LECTERN_ environment variables, then command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/lectern/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	// APIBaseURL is the root of the course backend's REST API.
	APIBaseURL string

	// Env selects the log format: "local", "dev" or "prod".
	Env string

	// DBPath is the SQLite file holding the session and journal.
	// Empty means the XDG default.
	DBPath string

	// LogPath is where interactive commands write logs. Empty means
	// lectern.log next to the database.
	LogPath string

	// RequestTimeout bounds each backend request. Zero leaves timing to
	// the backend and the transport.
	RequestTimeout time.Duration
}

// DefaultConfig returns a Config with defaults.
func DefaultConfig() Config {
	return Config{
		APIBaseURL: "http://localhost:8080/api",
		Env:        logging.EnvLocal,
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if u := os.Getenv("LECTERN_API_URL"); u != "" {
		cfg.APIBaseURL = u
	}
	if e := os.Getenv("LECTERN_ENV"); e != "" {
		cfg.Env = e
	}
	if p := os.Getenv("LECTERN_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("LECTERN_LOG"); p != "" {
		cfg.LogPath = p
	}
	if t := os.Getenv("LECTERN_REQUEST_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return cfg, fmt.Errorf("LECTERN_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url %q: scheme must be http or https", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api url %q: missing host", c.APIBaseURL)
	}
	switch c.Env {
	case logging.EnvLocal, logging.EnvDev, logging.EnvProd:
	default:
		return fmt.Errorf("unknown env %q (want local, dev or prod)", c.Env)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}

// ResolveLogPath returns LogPath, or lectern.log beside dbPath.
func (c Config) ResolveLogPath(dbPath string) string {
	if c.LogPath != "" {
		return c.LogPath
	}
	return filepath.Join(filepath.Dir(dbPath), "lectern.log")
}
