package graph

// ShortestPath returns a shortest path from start to end, both included,
// counting every edge as one hop.
//
// The search is a breadth-first search whose queue entries carry the whole
// path walked so far, so the first entry to reach end is returned as is.
// An empty, non-nil path with a nil error means end is not reachable.
// Unknown start or end yields ErrVertexNotFound.
func (g *Graph) ShortestPath(start, end string) ([]string, error) {
	from, err := g.lookup(start)
	if err != nil {
		return nil, err
	}
	to, err := g.lookup(end)
	if err != nil {
		return nil, err
	}

	if from == to {
		return []string{start}, nil
	}

	visited := make([]bool, len(g.vertices))
	visited[from] = true
	queue := [][]int{{from}}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		for _, next := range g.adjacency[path[len(path)-1]] {
			if visited[next] {
				continue
			}
			visited[next] = true

			extended := make([]int, len(path)+1)
			copy(extended, path)
			extended[len(path)] = next

			if next == to {
				return g.names(extended), nil
			}
			queue = append(queue, extended)
		}
	}

	return []string{}, nil
}
