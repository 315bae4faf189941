// Package model defines the graph data shared by the crawler, the on-disk
// store, the archive database and the reports.
//
// A crawl produces three things:
//   - VertexSet: every page name reached, in discovery order
//   - EdgeRecord: the outgoing links found on one fetched page
//   - LevelStats: timing and volume of one breadth-first level
//
// Keeping these in a leaf package lets store, database and report depend on
// them without depending on each other.
package model
