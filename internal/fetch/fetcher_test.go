package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newWikiServer serves handler below /wiki/ and returns a fetcher pointed at it.
func newWikiServer(t *testing.T, handler http.HandlerFunc, opts ...Option) *HTTPFetcher {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL + "/wiki/")}, opts...)
	return NewHTTPFetcher(server.Client(), opts...)
}

// TestNewHTTPFetcher tests defaults and options.
func TestNewHTTPFetcher(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f := NewHTTPFetcher(nil)
		if f.client != http.DefaultClient {
			t.Error("expected http.DefaultClient when client is nil")
		}
		if f.URL("Berlin") != "https://de.wikipedia.org/wiki/Berlin" {
			t.Errorf("unexpected URL %q", f.URL("Berlin"))
		}
		if f.maxBodySize != DefaultMaxBodySize {
			t.Errorf("expected default max body size, got %d", f.maxBodySize)
		}
	})

	t.Run("identifier is not escaped", func(t *testing.T) {
		t.Parallel()

		f := NewHTTPFetcher(nil, WithBaseURL("https://en.wikipedia.org/wiki/"))
		if got := f.URL("AC/DC"); got != "https://en.wikipedia.org/wiki/AC/DC" {
			t.Errorf("unexpected URL %q", got)
		}
		if got := f.URL("K%C3%B6ln"); got != "https://en.wikipedia.org/wiki/K%C3%B6ln" {
			t.Errorf("unexpected URL %q", got)
		}
	})

	t.Run("non-positive max body size keeps default", func(t *testing.T) {
		t.Parallel()

		f := NewHTTPFetcher(nil, WithMaxBodySize(0))
		if f.maxBodySize != DefaultMaxBodySize {
			t.Errorf("expected default max body size, got %d", f.maxBodySize)
		}
	})
}

// TestHTTPFetcherFetch tests fetching against a local server.
func TestHTTPFetcherFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns page content", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotUA string
		f := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html; charset=UTF-8")
			_, _ = w.Write([]byte(`<p><a href="/wiki/Hamburg">Hamburg</a></p>`))
		}, WithUserAgent("test-agent"))

		body, err := f.Fetch(context.Background(), "Berlin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body != `<p><a href="/wiki/Hamburg">Hamburg</a></p>` {
			t.Errorf("unexpected body %q", body)
		}
		if gotPath != "/wiki/Berlin" {
			t.Errorf("expected path /wiki/Berlin, got %q", gotPath)
		}
		if gotUA != "test-agent" {
			t.Errorf("expected user agent test-agent, got %q", gotUA)
		}
	})

	t.Run("decodes declared charset", func(t *testing.T) {
		t.Parallel()

		f := newWikiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
			_, _ = w.Write([]byte("<p>K\xf6ln</p>"))
		})

		body, err := f.Fetch(context.Background(), "K%C3%B6ln")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body != "<p>Köln</p>" {
			t.Errorf("expected decoded body, got %q", body)
		}
	})

	t.Run("unknown charset is a decode error", func(t *testing.T) {
		t.Parallel()

		f := newWikiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=x-no-such-charset")
			_, _ = w.Write([]byte("<p>text</p>"))
		})

		_, err := f.Fetch(context.Background(), "Berlin")
		if !errors.Is(err, ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		f := newWikiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		body, err := f.Fetch(context.Background(), "Leer")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body != "" {
			t.Errorf("expected empty body, got %q", body)
		}
	})

	t.Run("error status", func(t *testing.T) {
		t.Parallel()

		f := newWikiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "missing", http.StatusNotFound)
		})

		_, err := f.Fetch(context.Background(), "Gibt_es_nicht")
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if statusErr.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", statusErr.StatusCode)
		}
		if !strings.Contains(err.Error(), "Gibt_es_nicht") {
			t.Errorf("expected URL in error, got %q", err.Error())
		}
	})

	t.Run("body is truncated at max size", func(t *testing.T) {
		t.Parallel()

		f := newWikiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
		}, WithMaxBodySize(100))

		body, err := f.Fetch(context.Background(), "Lang")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(body) != 100 {
			t.Errorf("expected 100 bytes, got %d", len(body))
		}
	})

	t.Run("network failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		base := server.URL + "/wiki/"
		server.Close()

		f := NewHTTPFetcher(&http.Client{Timeout: time.Second}, WithBaseURL(base))
		if _, err := f.Fetch(context.Background(), "Berlin"); err == nil {
			t.Error("expected error from closed server")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		f := newWikiServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<p></p>"))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := f.Fetch(ctx, "Berlin"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
