package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/wikigraph/internal/graph"
	"github.com/nao1215/wikigraph/internal/model"
)

// File names inside a graph directory.
const (
	VerticesFile = "vertices.txt"
	EdgesFile    = "edges.txt"
)

// Separators of the edge file format.
const (
	sourceSeparator = ": "
	linkSeparator   = ", "
	lineSeparator   = "\n"
)

// SeedDir returns the directory a crawl of seed is stored in below root.
// Slashes in the seed are replaced so that sub-pages stay one directory.
func SeedDir(root, seed string) string {
	return filepath.Join(root, strings.ReplaceAll(seed, "/", "_"))
}

// Save writes the vertex set and edge records into dir.
// The directory is created if it does not exist yet.
func Save(dir string, vertices *model.VertexSet, edges []model.EdgeRecord) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create graph directory: %w", err)
	}

	if err := writeLines(filepath.Join(dir, VerticesFile), vertices.Items()); err != nil {
		return fmt.Errorf("failed to write vertices: %w", err)
	}

	lines := make([]string, len(edges))
	for i, rec := range edges {
		lines[i] = rec.Source + sourceSeparator + strings.Join(rec.Links, linkSeparator)
	}
	if err := writeLines(filepath.Join(dir, EdgesFile), lines); err != nil {
		return fmt.Errorf("failed to write edges: %w", err)
	}

	return nil
}

// writeLines writes lines joined by a newline, without a trailing one.
func writeLines(path string, lines []string) (err error) {
	f, err := os.Create(path) //nolint:gosec // Path is built from the user's data directory
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	for i, line := range lines {
		if i > 0 {
			if _, err := w.WriteString(lineSeparator); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(line); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Read parses the vertex and edge files in dir without building a graph.
func Read(dir string) ([]string, []model.EdgeRecord, error) {
	vertices, err := readLines(filepath.Join(dir, VerticesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read vertices: %w", err)
	}

	lines, err := readLines(filepath.Join(dir, EdgesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read edges: %w", err)
	}

	edges := make([]model.EdgeRecord, 0, len(lines))
	for i, line := range lines {
		rec, err := parseEdgeLine(line)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", EdgesFile, i+1, err)
		}
		edges = append(edges, rec)
	}

	return vertices, edges, nil
}

// Load reads dir and builds the query graph from it.
func Load(dir string) (*graph.Graph, error) {
	vertices, edges, err := Read(dir)
	if err != nil {
		return nil, err
	}
	return graph.New(vertices, edges), nil
}

// readLines returns the lines of a file. An empty file has no lines and a
// single trailing newline is ignored.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is built from the user's data directory
	if err != nil {
		return nil, err
	}

	content := strings.TrimSuffix(string(data), lineSeparator)
	if content == "" {
		return []string{}, nil
	}
	return strings.Split(content, lineSeparator), nil
}

// parseEdgeLine splits "src: a, b" on the first separator.
func parseEdgeLine(line string) (model.EdgeRecord, error) {
	source, list, ok := strings.Cut(line, sourceSeparator)
	if !ok {
		return model.EdgeRecord{}, fmt.Errorf("%w: %q", ErrMalformedEdgeLine, line)
	}

	rec := model.EdgeRecord{Source: source, Links: []string{}}
	if list != "" {
		rec.Links = strings.Split(list, linkSeparator)
	}
	return rec, nil
}
