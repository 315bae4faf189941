// Package graph holds the in-memory link graph used to answer path queries.
//
// A Graph is built once from a vertex list and edge records, typically read
// back from disk by the store package, and is immutable afterwards. Vertices
// get stable indices in the order they are first listed; adjacency is kept
// as a per-vertex set of destination indices.
//
// Edge destinations that are not listed as vertices are dropped while
// building. This prunes links that were discovered but never became part of
// the saved vertex set. The number of dropped links is reported by
// Graph.Stats so callers can tell a pruned graph from a complete one.
//
// Lookups by name go through an index map built at construction. Asking for
// a page that is not in the graph returns ErrVertexNotFound; a query between
// two known pages that are not connected returns an empty path and no error.
package graph
