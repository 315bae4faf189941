// Package fetch retrieves raw page content for the crawler.
//
// The crawler only depends on the Fetcher interface. HTTPFetcher is the
// production implementation: it appends the page identifier to a wiki base
// URL, performs a GET, and decodes the body to UTF-8 using the charset
// declared by the response (or sniffed from the content).
//
// NewHTTPClient builds the shared *http.Client. Connections are pooled so
// that hundreds of workers reuse keep-alive connections to the same wiki
// host, and requests can optionally be routed through a SOCKS5 proxy such as
// a local Tor daemon.
//
// Fetch does not retry. A failed fetch is the crawler's signal to record the
// page without links and move on.
package fetch
