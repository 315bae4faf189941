package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wikigraph"

	// DefaultBaseURL is the article prefix of the German Wikipedia.
	// Page identifiers are appended to it without escaping.
	DefaultBaseURL = "https://de.wikipedia.org/wiki/"

	// DefaultMaxDepth effectively means "until the frontier is empty" for
	// any real wiki.
	DefaultMaxDepth = 1024

	// DefaultWorkers is the number of pages fetched concurrently.
	DefaultWorkers = 250

	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies wikigraph in HTTP requests.
	DefaultUserAgent = "wikigraph/1.0 (+https://github.com/nao1215/wikigraph)"

	// DefaultMaxBodySize limits how much of a page is read (5MB).
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultDataDir is where crawl results are written, relative to the
	// working directory.
	DefaultDataDir = "data"
)

// Config holds all options of a crawl.
type Config struct {
	// Seed is the page identifier the crawl starts from.
	Seed string

	// BaseURL is prepended to every page identifier to build its URL.
	BaseURL string

	// MaxDepth is the number of BFS levels to process.
	MaxDepth int

	// Workers is the size of the fetch worker pool.
	Workers int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// MaxBodySize is the number of bytes read per page.
	MaxBodySize int64

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	ProxyAddress string

	// DataDir is the root below which graph directories are created.
	DataDir string

	// DenyPrefixes replaces the extractor's namespace denylist when non-nil.
	DenyPrefixes []string

	// Headers are sent with every request.
	Headers map[string]string

	// ConfigFilePath is the explicitly requested configuration file.
	ConfigFilePath string

	// SaveToDB archives the crawl in the SQLite database under DBDir.
	SaveToDB bool

	// DBDir is the directory of the SQLite archive.
	// Defaults to the XDG data directory.
	DBDir string

	// ReportFile receives a Markdown summary of the crawl when set.
	ReportFile string

	// MetricsAddr serves Prometheus metrics during the crawl when set.
	MetricsAddr string

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		MaxDepth:    DefaultMaxDepth,
		Workers:     DefaultWorkers,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		DataDir:     DefaultDataDir,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for wikigraph.
// On Linux: ~/.local/share/wikigraph
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wikigraph.
// On Linux: ~/.config/wikigraph
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the options needed for a crawl and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Seed == "" {
		return ErrNoSeed
	}

	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	return nil
}
