package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with the documented
// default values. A failing case here means a default changed.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is the German Wikipedia", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://de.wikipedia.org/wiki/" {
			t.Errorf("expected BaseURL to be 'https://de.wikipedia.org/wiki/', got '%s'", cfg.BaseURL)
		}
	})

	t.Run("default MaxDepth is 1024", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxDepth != 1024 {
			t.Errorf("expected MaxDepth to be 1024, got %d", cfg.MaxDepth)
		}
	})

	t.Run("default Workers is 250", func(t *testing.T) {
		t.Parallel()
		if cfg.Workers != 250 {
			t.Errorf("expected Workers to be 250, got %d", cfg.Workers)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default MaxBodySize is 5MB", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxBodySize != 5*1024*1024 {
			t.Errorf("expected MaxBodySize to be 5MB, got %d", cfg.MaxBodySize)
		}
	})

	t.Run("default DataDir is data", func(t *testing.T) {
		t.Parallel()
		if cfg.DataDir != "data" {
			t.Errorf("expected DataDir to be 'data', got '%s'", cfg.DataDir)
		}
	})

	t.Run("default DBDir is the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir to be %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("default DenyPrefixes is nil", func(t *testing.T) {
		t.Parallel()
		if cfg.DenyPrefixes != nil {
			t.Errorf("expected DenyPrefixes to be nil, got %v", cfg.DenyPrefixes)
		}
	})

	t.Run("default ProxyAddress is empty", func(t *testing.T) {
		t.Parallel()
		if cfg.ProxyAddress != "" {
			t.Errorf("expected ProxyAddress to be empty, got '%s'", cfg.ProxyAddress)
		}
	})

	t.Run("default SaveToDB is false", func(t *testing.T) {
		t.Parallel()
		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false")
		}
	})
}

// TestConfigValidate tests every validation rule of Config.Validate.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Seed = "Angela_Merkel"
		return cfg
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("zero max depth is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxDepth = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("plain http base URL is valid", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BaseURL = "http://127.0.0.1:8080/wiki/"
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"empty seed", func(c *Config) { c.Seed = "" }, ErrNoSeed},
		{"negative max depth", func(c *Config) { c.MaxDepth = -1 }, ErrInvalidMaxDepth},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
		{"negative workers", func(c *Config) { c.Workers = -3 }, ErrInvalidWorkers},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative max body size", func(c *Config) { c.MaxBodySize = -1 }, ErrInvalidMaxBodySize},
		{"empty base URL", func(c *Config) { c.BaseURL = "" }, ErrInvalidBaseURL},
		{"relative base URL", func(c *Config) { c.BaseURL = "/wiki/" }, ErrInvalidBaseURL},
		{"ftp base URL", func(c *Config) { c.BaseURL = "ftp://example.com/wiki/" }, ErrInvalidBaseURL},
		{"base URL without host", func(c *Config) { c.BaseURL = "https:///wiki/" }, ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name+" returns "+tt.want.Error(), func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir ends with the app name", func(t *testing.T) {
		t.Parallel()
		if dir := XDGDataDir(); filepath.Base(dir) != AppName {
			t.Errorf("expected XDG data dir to end with %q, got %q", AppName, dir)
		}
	})

	t.Run("XDGConfigDir ends with the app name", func(t *testing.T) {
		t.Parallel()
		if dir := XDGConfigDir(); !strings.HasSuffix(dir, AppName) {
			t.Errorf("expected XDG config dir to end with %q, got %q", AppName, dir)
		}
	})
}
