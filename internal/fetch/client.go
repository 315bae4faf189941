package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// ClientOptions configures NewHTTPClient.
type ClientOptions struct {
	// Timeout bounds a whole request including reading the body.
	Timeout time.Duration

	// ProxyAddress routes all connections through a SOCKS5 proxy when set.
	ProxyAddress string

	// MaxConnsPerHost should match the crawler's worker count so that every
	// worker can hold a connection to the wiki host.
	MaxConnsPerHost int

	// Headers are added to every request, e.g. credentials for a private wiki.
	Headers map[string]string
}

// NewHTTPClient creates the HTTP client used by HTTPFetcher.
func NewHTTPClient(opts ClientOptions) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport
	transport.MaxConnsPerHost = opts.MaxConnsPerHost
	transport.MaxIdleConnsPerHost = opts.MaxConnsPerHost
	transport.MaxIdleConns = opts.MaxConnsPerHost
	transport.IdleConnTimeout = 90 * time.Second

	if opts.ProxyAddress != "" {
		dial, err := socks5DialContext(opts.ProxyAddress)
		if err != nil {
			return nil, err
		}
		transport.Proxy = nil
		transport.DialContext = dial
	}

	var rt http.RoundTripper = transport
	if len(opts.Headers) > 0 {
		rt = &headerInjectingTransport{base: transport, headers: opts.Headers}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   opts.Timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}

// socks5DialContext returns a dial function that tunnels through address.
func socks5DialContext(address string) (func(context.Context, string, string) (net.Conn, error), error) {
	if err := ValidateProxyAddress(address); err != nil {
		return nil, err
	}

	dialer, err := proxy.SOCKS5("tcp", address, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}

	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext, nil
	}

	// Fall back to a plain dial that gives up waiting when ctx ends.
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type dialResult struct {
			conn net.Conn
			err  error
		}
		resultCh := make(chan dialResult, 1)
		go func() {
			conn, err := dialer.Dial(network, addr)
			resultCh <- dialResult{conn, err}
		}()

		select {
		case r := <-resultCh:
			return r.conn, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}, nil
}

// ValidateProxyAddress checks that address is "host:port" with a port in
// 1..65535.
func ValidateProxyAddress(address string) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidProxyAddress, address)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidProxyAddress, address)
	}
	return nil
}

// headerInjectingTransport adds fixed headers to every request.
type headerInjectingTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}
	return t.base.RoundTrip(clone)
}
