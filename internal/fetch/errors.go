package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDecode is returned when a response body cannot be decoded to text.
	ErrDecode = errors.New("failed to decode response body")

	// ErrInvalidProxyAddress is returned when the proxy address is not "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
)

// StatusError is returned when the server answers with a 4xx or 5xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s from %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}
