package store

import "errors"

// ErrMalformedEdgeLine is returned when an edge line has no ": " separator.
var ErrMalformedEdgeLine = errors.New("malformed edge line")
