package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"golang.org/x/net/html/charset"
)

// Defaults for HTTPFetcher.
const (
	// DefaultBaseURL is the German Wikipedia article prefix.
	DefaultBaseURL = "https://de.wikipedia.org/wiki/"

	// DefaultUserAgent identifies the crawler to wiki operators.
	DefaultUserAgent = "wikigraph/1.0 (+https://github.com/nao1215/wikigraph)"

	// DefaultMaxBodySize caps how much of a page is read.
	DefaultMaxBodySize = 5 * 1024 * 1024
)

// Fetcher returns the raw content of a page.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (string, error)
}

// HTTPFetcher fetches pages from a wiki over HTTP.
type HTTPFetcher struct {
	client      *http.Client
	baseURL     string
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithBaseURL sets the prefix the page identifier is appended to.
func WithBaseURL(base string) Option {
	return func(f *HTTPFetcher) {
		f.baseURL = base
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits the number of body bytes read per page.
// Non-positive values keep the default.
func WithMaxBodySize(n int64) Option {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// WithLogger sets the logger for per-request debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *HTTPFetcher) {
		f.logger = logger
	}
}

// NewHTTPFetcher creates an HTTPFetcher using client.
func NewHTTPFetcher(client *http.Client, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:      client,
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = http.DefaultClient
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// URL returns the address fetched for id. The identifier is appended as is;
// links taken from wiki markup are already percent-encoded.
func (f *HTTPFetcher) URL(id string) string {
	return f.baseURL + id
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, id string) (string, error) {
	pageURL := f.URL(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	f.logger.Debug("fetching page", "page", id, "url", pageURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxBodySize)) //nolint:errcheck // Drain for connection reuse
		return "", &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	text, err := decodeBody(io.LimitReader(resp.Body, f.maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%s: %w", pageURL, err)
	}

	return text, nil
}

// decodeBody reads r and converts it to UTF-8.
// A charset named in contentType must be known; otherwise the encoding is
// sniffed from the content.
func decodeBody(r io.Reader, contentType string) (string, error) {
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			if label, ok := params["charset"]; ok {
				if enc, _ := charset.Lookup(label); enc == nil {
					return "", fmt.Errorf("%w: unknown charset %q", ErrDecode, label)
				}
			}
		}
	}

	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return string(body), nil
}
