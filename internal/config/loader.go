package config

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name searched in the current
// and home directories.
const DefaultConfigFile = ".wikigraph"

// xdgConfigFile is the file name inside the XDG config directory.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the YAML configuration file.
// Every field is optional; unset fields leave the defaults alone.
type File struct {
	// Wiki describes the wiki being crawled.
	Wiki WikiFile `yaml:"wiki,omitempty"`

	// Crawl tunes the crawler.
	Crawl CrawlFile `yaml:"crawl,omitempty"`

	// Headers are added to every request, e.g. for a private wiki.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// WikiFile holds wiki-specific settings.
type WikiFile struct {
	// BaseURL is the article URL prefix, e.g. https://en.wikipedia.org/wiki/.
	BaseURL string `yaml:"baseURL,omitempty"`

	// DenyPrefixes lists namespaces that are never followed.
	// An explicitly empty list disables filtering.
	DenyPrefixes []string `yaml:"denyPrefixes,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// CrawlFile holds crawler settings.
type CrawlFile struct {
	// MaxDepth is a pointer so that an explicit 0 can be told from unset.
	MaxDepth *int `yaml:"maxDepth,omitempty"`

	Workers     int           `yaml:"workers,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	MaxBodySize int64         `yaml:"maxBodySize,omitempty"`
	Proxy       string        `yaml:"proxy,omitempty"`
	DataDir     string        `yaml:"dataDir,omitempty"`
	DBDir       string        `yaml:"dbDir,omitempty"`
}

// LoadConfigFile reads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply copies every set field of the file into cfg.
func (cf *File) Apply(cfg *Config) {
	if cf.Wiki.BaseURL != "" {
		cfg.BaseURL = cf.Wiki.BaseURL
	}
	if cf.Wiki.DenyPrefixes != nil {
		cfg.DenyPrefixes = cf.Wiki.DenyPrefixes
	}
	if cf.Wiki.UserAgent != "" {
		cfg.UserAgent = cf.Wiki.UserAgent
	}

	if cf.Crawl.MaxDepth != nil {
		cfg.MaxDepth = *cf.Crawl.MaxDepth
	}
	if cf.Crawl.Workers != 0 {
		cfg.Workers = cf.Crawl.Workers
	}
	if cf.Crawl.Timeout != 0 {
		cfg.Timeout = cf.Crawl.Timeout
	}
	if cf.Crawl.MaxBodySize != 0 {
		cfg.MaxBodySize = cf.Crawl.MaxBodySize
	}
	if cf.Crawl.Proxy != "" {
		cfg.ProxyAddress = cf.Crawl.Proxy
	}
	if cf.Crawl.DataDir != "" {
		cfg.DataDir = cf.Crawl.DataDir
	}
	if cf.Crawl.DBDir != "" {
		cfg.DBDir = cf.Crawl.DBDir
	}

	if len(cf.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(cf.Headers))
		}
		maps.Copy(cfg.Headers, cf.Headers)
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. .wikigraph in the current directory
// 3. config.yaml in the XDG config directory
// 4. .wikigraph in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}

	return ""
}
