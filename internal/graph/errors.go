package graph

import "errors"

// ErrVertexNotFound is returned when a page name is not a vertex of the graph.
// Callers use errors.Is to tell it apart from an empty path.
var ErrVertexNotFound = errors.New("vertex not found")
