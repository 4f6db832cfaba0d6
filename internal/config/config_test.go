package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"LECTERN_API_URL",
		"LECTERN_ENV",
		"LECTERN_DB",
		"LECTERN_LOG",
		"LECTERN_REQUEST_TIMEOUT",
	} {
		t.Setenv(v, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Zero(t, cfg.RequestTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LECTERN_API_URL", "https://courses.example.com/api")
	t.Setenv("LECTERN_ENV", "prod")
	t.Setenv("LECTERN_DB", "/tmp/lectern-test.db")
	t.Setenv("LECTERN_REQUEST_TIMEOUT", "15s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://courses.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "/tmp/lectern-test.db", cfg.DBPath)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestFromEnv_BadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("LECTERN_REQUEST_TIMEOUT", "soon")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "LECTERN_REQUEST_TIMEOUT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"https", func(c *Config) { c.APIBaseURL = "https://x.io" }, ""},
		{"no scheme", func(c *Config) { c.APIBaseURL = "localhost:8080" }, "scheme"},
		{"ftp", func(c *Config) { c.APIBaseURL = "ftp://x.io" }, "scheme"},
		{"no host", func(c *Config) { c.APIBaseURL = "http://" }, "missing host"},
		{"bad env", func(c *Config) { c.Env = "qa" }, "unknown env"},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestResolveLogPath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "/data/lectern/lectern.log", cfg.ResolveLogPath("/data/lectern/lectern.db"))

	cfg.LogPath = "/var/log/lectern.log"
	assert.Equal(t, "/var/log/lectern.log", cfg.ResolveLogPath("/data/lectern/lectern.db"))
}
