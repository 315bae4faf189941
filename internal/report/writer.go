package report

import (
	"io"
	"time"

	"github.com/nao1215/wikigraph/internal/graph"
	"github.com/nao1215/wikigraph/internal/model"
)

// DefaultTopPages is the number of pages listed by out-degree.
const DefaultTopPages = 10

// Writer outputs a Summary in one format.
type Writer interface {
	// Write renders s to the writer's destination and returns the number
	// of bytes written.
	Write(s *Summary) (int, error)
}

// Summary is the data shared by all report formats.
type Summary struct {
	// Name is the graph's name, usually the seed page.
	Name string `json:"name"`

	// Source is where the graph was loaded from: a directory or a crawl id.
	Source string `json:"source,omitempty"`

	// Version is the wikigraph version that produced the report.
	Version string `json:"version,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`

	Stats    graph.LoadStats `json:"stats"`
	TopPages []graph.Degree  `json:"top_pages"`

	// Levels and Duration are only set for a report written right after a
	// crawl.
	Levels   []model.LevelStats `json:"levels,omitempty"`
	Duration time.Duration      `json:"duration_ns,omitempty"`
}

// NewSummary summarises g, listing the top pages by out-degree.
func NewSummary(name string, g *graph.Graph, top int) *Summary {
	pages := g.TopByOutDegree(top)
	if pages == nil {
		pages = []graph.Degree{}
	}
	return &Summary{
		Name:        name,
		GeneratedAt: time.Now(),
		Stats:       g.Stats(),
		TopPages:    pages,
	}
}

// Failures returns the number of failed fetches over all levels.
func (s *Summary) Failures() int {
	total := 0
	for _, l := range s.Levels {
		total += l.Failures
	}
	return total
}

// baseWriter holds the destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
