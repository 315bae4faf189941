package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/wikigraph/internal/extract"
	"github.com/nao1215/wikigraph/internal/fetch"
	"github.com/nao1215/wikigraph/internal/metrics"
	"github.com/nao1215/wikigraph/internal/model"
	"github.com/nao1215/wikigraph/internal/pipeline"
)

// DefaultMaxDepth is the number of BFS levels processed unless configured.
const DefaultMaxDepth = 1024

// Crawler performs depth-limited breadth-first crawls.
type Crawler struct {
	// fetcher retrieves page content. It is called from pool goroutines.
	fetcher fetch.Fetcher

	// pool bounds the number of concurrent fetches per level.
	pool *pipeline.Pool

	// extractor turns page content into links.
	extractor *extract.Extractor

	// maxDepth is the number of levels to process.
	// 0 means only the seed is recorded and nothing is fetched.
	maxDepth int

	logger  *slog.Logger
	metrics *metrics.Collector

	// onLevel is called after each level's merge.
	onLevel func(model.LevelStats)
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithMaxDepth sets the number of BFS levels to process.
// Negative values are ignored.
func WithMaxDepth(depth int) Option {
	return func(c *Crawler) {
		if depth >= 0 {
			c.maxDepth = depth
		}
	}
}

// WithExtractor replaces the default link extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(c *Crawler) {
		c.extractor = e
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithMetrics records progress in the given collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Crawler) {
		c.metrics = m
	}
}

// WithLevelHook registers fn to be called with the stats of every finished
// level. fn runs on the crawling goroutine, between levels.
func WithLevelHook(fn func(model.LevelStats)) Option {
	return func(c *Crawler) {
		c.onLevel = fn
	}
}

// New creates a Crawler that fetches through f on pool.
func New(f fetch.Fetcher, pool *pipeline.Pool, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:  f,
		pool:     pool,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.pool == nil {
		c.pool = pipeline.NewPool()
	}
	if c.extractor == nil {
		c.extractor = extract.New()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Result is the outcome of a finished crawl.
type Result struct {
	// Seed is the page the crawl started from.
	Seed string

	// Vertices holds every discovered page, the seed first.
	Vertices *model.VertexSet

	// Edges holds one record per fetched page, level by level.
	Edges []model.EdgeRecord

	// Levels holds the statistics of every processed level.
	Levels []model.LevelStats

	// StartedAt is when the crawl began.
	StartedAt time.Time

	// Duration is the wall time of the whole crawl.
	Duration time.Duration
}

// Failures returns the number of pages that could not be fetched.
func (r *Result) Failures() int {
	n := 0
	for _, l := range r.Levels {
		n += l.Failures
	}
	return n
}

// pageVisit is the outcome of processing one frontier page.
type pageVisit struct {
	record model.EdgeRecord
	err    error
}

// Crawl expands the graph from seed. It returns an error only when ctx is
// cancelled; fetch failures are recorded as pages without links.
func (c *Crawler) Crawl(ctx context.Context, seed string) (*Result, error) {
	startedAt := time.Now()

	vertices := model.NewVertexSet(seed)
	edges := make([]model.EdgeRecord, 0)
	levels := make([]model.LevelStats, 0)
	frontier := []string{seed}

	c.logger.Info("starting crawl",
		"seed", seed,
		"maxDepth", c.maxDepth,
		"workers", c.pool.Concurrency(),
	)

	for i := 0; len(frontier) > 0 && i < c.maxDepth; i++ {
		levelStart := time.Now()

		visits, err := pipeline.ProcessBatch(ctx, c.pool, frontier, c.visit)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			return nil, fmt.Errorf("crawl interrupted at level %d: %w", i, err)
		}

		// Merge on this goroutine only.
		next := make([]string, 0)
		failures := 0
		for _, v := range visits {
			if v.err != nil {
				failures++
			}
			for _, link := range v.record.Links {
				if vertices.Insert(link) {
					next = append(next, link)
				}
			}
			edges = append(edges, v.record)
		}

		stats := model.LevelStats{
			Level:         i,
			Processed:     len(frontier),
			Discovered:    len(next),
			Failures:      failures,
			Elapsed:       time.Since(levelStart),
			TotalVertices: vertices.Len(),
		}
		levels = append(levels, stats)

		c.logger.Info("level complete",
			"level", stats.Level,
			"processed", stats.Processed,
			"discovered", stats.Discovered,
			"failures", stats.Failures,
			"elapsed", stats.Elapsed,
			"vertices", stats.TotalVertices,
		)
		c.metrics.ObserveLevel(stats)
		if c.onLevel != nil {
			c.onLevel(stats)
		}

		frontier = next
	}

	result := &Result{
		Seed:      seed,
		Vertices:  vertices,
		Edges:     edges,
		Levels:    levels,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
	}

	c.logger.Info("crawl complete",
		"seed", seed,
		"levels", len(levels),
		"vertices", vertices.Len(),
		"records", len(edges),
		"failures", result.Failures(),
		"elapsed", result.Duration,
	)

	return result, nil
}

// visit fetches one page and extracts its links. It runs on a pool
// goroutine and touches no crawl state.
func (c *Crawler) visit(ctx context.Context, id string) pageVisit {
	start := time.Now()

	content, err := c.fetcher.Fetch(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("failed to fetch page", "page", id, "error", err)
		}
		c.metrics.ObserveFetch(time.Since(start), 0, err)
		return pageVisit{
			record: model.EdgeRecord{Source: id, Links: []string{}},
			err:    err,
		}
	}

	links := c.extractor.Extract(content)
	c.metrics.ObserveFetch(time.Since(start), len(links), nil)
	c.logger.Debug("page processed", "page", id, "links", len(links))

	return pageVisit{record: model.EdgeRecord{Source: id, Links: links}}
}
