package model

import "time"

// LevelStats describes one finished BFS level of a crawl.
type LevelStats struct {
	// Level is the zero-based BFS level.
	Level int `json:"level"`

	// Processed is the number of frontier pages fetched in this level.
	Processed int `json:"processed"`

	// Discovered is the number of pages first seen in this level.
	// They form the next frontier.
	Discovered int `json:"discovered"`

	// Failures is the number of pages that could not be fetched or decoded.
	Failures int `json:"failures"`

	// Elapsed covers both the parallel fetch phase and the merge.
	Elapsed time.Duration `json:"elapsed"`

	// TotalVertices is the size of the vertex set after the merge.
	TotalVertices int `json:"total_vertices"`
}

// LinksPerSecond returns the processing throughput of the level.
func (l LevelStats) LinksPerSecond() float64 {
	secs := l.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(l.Processed) / secs
}
