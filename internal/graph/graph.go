package graph

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/nao1215/wikigraph/internal/model"
)

// Graph is an immutable directed link graph.
type Graph struct {
	// vertices maps index to page name.
	vertices []string

	// index maps page name to index. Built once; replaces any name scan.
	index map[string]int

	// adjacency[i] lists the distinct destinations of vertex i in the order
	// they were first recorded.
	adjacency [][]int

	stats LoadStats
}

// LoadStats summarises what happened while building a Graph.
type LoadStats struct {
	// Vertices is the number of distinct vertices.
	Vertices int `json:"vertices"`

	// EdgeRecords is the number of edge records that were read.
	EdgeRecords int `json:"edge_records"`

	// Links is the number of distinct edges kept in the adjacency.
	Links int `json:"links"`

	// DuplicateVertices counts repeated vertex entries; the first one wins.
	DuplicateVertices int `json:"duplicate_vertices"`

	// DroppedDestinations counts links whose destination is not a vertex.
	DroppedDestinations int `json:"dropped_destinations"`

	// UnknownSources counts edge records whose source is not a vertex.
	UnknownSources int `json:"unknown_sources"`
}

// New builds a Graph from a vertex list and edge records.
func New(vertices []string, edges []model.EdgeRecord) *Graph {
	g := &Graph{
		vertices: make([]string, 0, len(vertices)),
		index:    make(map[string]int, len(vertices)),
	}

	for _, v := range vertices {
		if _, ok := g.index[v]; ok {
			g.stats.DuplicateVertices++
			continue
		}
		g.index[v] = len(g.vertices)
		g.vertices = append(g.vertices, v)
	}

	g.adjacency = make([][]int, len(g.vertices))
	seen := make([]map[int]struct{}, len(g.vertices))

	for _, rec := range edges {
		g.stats.EdgeRecords++

		src, ok := g.index[rec.Source]
		if !ok {
			g.stats.UnknownSources++
			continue
		}
		if seen[src] == nil {
			seen[src] = make(map[int]struct{}, len(rec.Links))
		}

		for _, link := range rec.Links {
			dst, ok := g.index[link]
			if !ok {
				g.stats.DroppedDestinations++
				continue
			}
			if _, dup := seen[src][dst]; dup {
				continue
			}
			seen[src][dst] = struct{}{}
			g.adjacency[src] = append(g.adjacency[src], dst)
			g.stats.Links++
		}
	}

	g.stats.Vertices = len(g.vertices)
	return g
}

// Stats returns the build statistics.
func (g *Graph) Stats() LoadStats {
	return g.stats
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.vertices)
}

// Contains reports whether name is a vertex.
func (g *Graph) Contains(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Vertices returns the vertex names in index order.
func (g *Graph) Vertices() []string {
	return slices.Clone(g.vertices)
}

// lookup resolves a name to its index.
func (g *Graph) lookup(name string) (int, error) {
	i, ok := g.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrVertexNotFound, name)
	}
	return i, nil
}

// Children returns the direct out-neighbours of name.
func (g *Graph) Children(name string) ([]string, error) {
	i, err := g.lookup(name)
	if err != nil {
		return nil, err
	}
	return g.names(g.adjacency[i]), nil
}

// Parents returns every vertex with an edge into name, in index order.
// It scans the whole adjacency and is linear in the number of edges.
func (g *Graph) Parents(name string) ([]string, error) {
	target, err := g.lookup(name)
	if err != nil {
		return nil, err
	}

	parents := make([]string, 0)
	for src, dsts := range g.adjacency {
		if slices.Contains(dsts, target) {
			parents = append(parents, g.vertices[src])
		}
	}
	return parents, nil
}

// Degree is a vertex together with its number of outgoing edges.
type Degree struct {
	Page string `json:"page"`
	Out  int    `json:"out"`
}

// TopByOutDegree returns up to n vertices with the most outgoing edges.
// Ties keep index order.
func (g *Graph) TopByOutDegree(n int) []Degree {
	if n <= 0 {
		return nil
	}

	degrees := make([]Degree, len(g.vertices))
	for i, v := range g.vertices {
		degrees[i] = Degree{Page: v, Out: len(g.adjacency[i])}
	}
	slices.SortStableFunc(degrees, func(a, b Degree) int {
		return cmp.Compare(b.Out, a.Out)
	})

	if len(degrees) > n {
		degrees = degrees[:n]
	}
	return degrees
}

func (g *Graph) names(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = g.vertices[id]
	}
	return out
}
