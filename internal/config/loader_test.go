package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// TestLoadConfigFile tests reading the YAML configuration file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cf, err := LoadConfigFile("/nonexistent/path/.wikigraph")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cf != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".wikigraph")
		content := `wiki:
  baseURL: "https://en.wikipedia.org/wiki/"
  denyPrefixes:
    - "File:"
    - "Category:"
crawl:
  maxDepth: 3
  workers: 16
  timeout: 10s
  proxy: "127.0.0.1:9050"
headers:
  Authorization: "Bearer token"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.Wiki.BaseURL != "https://en.wikipedia.org/wiki/" {
			t.Errorf("unexpected base URL %q", cf.Wiki.BaseURL)
		}
		if !slices.Equal(cf.Wiki.DenyPrefixes, []string{"File:", "Category:"}) {
			t.Errorf("unexpected deny prefixes %v", cf.Wiki.DenyPrefixes)
		}
		if cf.Crawl.MaxDepth == nil || *cf.Crawl.MaxDepth != 3 {
			t.Errorf("expected max depth 3, got %v", cf.Crawl.MaxDepth)
		}
		if cf.Crawl.Workers != 16 {
			t.Errorf("expected 16 workers, got %d", cf.Crawl.Workers)
		}
		if cf.Crawl.Timeout != 10*time.Second {
			t.Errorf("expected 10s timeout, got %v", cf.Crawl.Timeout)
		}
		if cf.Headers["Authorization"] != "Bearer token" {
			t.Error("expected Authorization header")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".wikigraph")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFileApply tests that only the fields set in the file override defaults.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if cfg.BaseURL != DefaultBaseURL || cfg.MaxDepth != DefaultMaxDepth || cfg.Workers != DefaultWorkers {
			t.Errorf("expected defaults to survive, got %+v", cfg)
		}
		if cfg.Headers != nil {
			t.Errorf("expected nil headers, got %v", cfg.Headers)
		}
	})

	t.Run("explicit zero max depth overrides default", func(t *testing.T) {
		t.Parallel()

		zero := 0
		cfg := NewConfig()
		(&File{Crawl: CrawlFile{MaxDepth: &zero}}).Apply(cfg)

		if cfg.MaxDepth != 0 {
			t.Errorf("expected max depth 0, got %d", cfg.MaxDepth)
		}
	})

	t.Run("set fields override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cf := &File{
			Wiki: WikiFile{
				BaseURL:      "http://localhost/wiki/",
				DenyPrefixes: []string{},
				UserAgent:    "test-agent",
			},
			Crawl: CrawlFile{
				Workers:     4,
				Timeout:     time.Second,
				MaxBodySize: 1024,
				Proxy:       "127.0.0.1:1080",
				DataDir:     "/tmp/graphs",
				DBDir:       "/tmp/db",
			},
			Headers: map[string]string{"X-Test": "1"},
		}
		cf.Apply(cfg)

		if cfg.BaseURL != "http://localhost/wiki/" {
			t.Errorf("unexpected base URL %q", cfg.BaseURL)
		}
		if cfg.DenyPrefixes == nil || len(cfg.DenyPrefixes) != 0 {
			t.Errorf("expected empty non-nil deny prefixes, got %v", cfg.DenyPrefixes)
		}
		if cfg.UserAgent != "test-agent" {
			t.Errorf("unexpected user agent %q", cfg.UserAgent)
		}
		if cfg.Workers != 4 || cfg.Timeout != time.Second || cfg.MaxBodySize != 1024 {
			t.Errorf("unexpected crawl settings %+v", cfg)
		}
		if cfg.ProxyAddress != "127.0.0.1:1080" {
			t.Errorf("unexpected proxy %q", cfg.ProxyAddress)
		}
		if cfg.DataDir != "/tmp/graphs" || cfg.DBDir != "/tmp/db" {
			t.Errorf("unexpected dirs %q %q", cfg.DataDir, cfg.DBDir)
		}
		if cfg.Headers["X-Test"] != "1" {
			t.Errorf("expected X-Test header, got %v", cfg.Headers)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("wiki: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("finds .wikigraph in the current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		configPath := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("wiki: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		result := FindConfigFile("")
		if filepath.Base(result) != DefaultConfigFile || filepath.Dir(result) == "" {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})
}
