package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of tasks a Pool runs at once unless
// configured otherwise.
const DefaultConcurrency = 250

// Pool bounds how many tasks of a batch run at the same time.
// A Pool holds no per-batch state and can be shared by several callers;
// each ProcessBatch call gets its own limit of concurrency goroutines.
type Pool struct {
	// concurrency is the maximum number of tasks in flight.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithConcurrency sets the maximum number of concurrent tasks.
// Non-positive values keep the default.
func WithConcurrency(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger used for batch-level messages.
func WithLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) {
		p.logger = logger
	}
}

// NewPool creates a Pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Concurrency returns the configured task limit.
func (p *Pool) Concurrency() int {
	return p.concurrency
}

// ProcessBatch runs fn for every item with at most p.Concurrency() calls in
// flight and returns the results in the order the calls finished, not in
// input order.
//
// fn reports failures through its result; ProcessBatch itself only fails
// when ctx is cancelled, in which case items that had not started yet are
// skipped and ctx.Err() is returned along with the results collected so far.
func ProcessBatch[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) R) ([]R, error) {
	startTime := time.Now()
	p.logger.Debug("starting batch",
		"items", len(items),
		"concurrency", p.concurrency,
	)

	results := make([]R, 0, len(items))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, item := range items {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			r := fn(gctx, item)

			mu.Lock()
			results = append(results, r)
			mu.Unlock()

			return nil
		})
	}

	err := g.Wait()

	p.logger.Debug("batch complete",
		"items", len(items),
		"completed", len(results),
		"elapsed", time.Since(startTime),
	)

	return results, err
}
