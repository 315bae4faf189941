// Package metrics exposes Prometheus metrics for a running crawl.
//
// A Collector owns its own registry so tests and concurrent crawls do not
// share global state. All methods are safe to call on a nil *Collector,
// which lets the crawler record unconditionally.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nao1215/wikigraph/internal/model"
)

const namespace = "wikigraph"

// Fetch results used as label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Collector records crawl progress.
type Collector struct {
	registry *prometheus.Registry

	pagesFetched   *prometheus.CounterVec
	linksExtracted prometheus.Counter
	fetchDuration  prometheus.Histogram
	levelDuration  prometheus.Histogram
	vertices       prometheus.Gauge
	frontier       prometheus.Gauge
	level          prometheus.Gauge
}

// New creates a Collector with a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		pagesFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Pages processed by the crawler, by fetch result.",
		}, []string{"result"}),
		linksExtracted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_extracted_total",
			Help:      "Links extracted from fetched pages, before deduplication.",
		}),
		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time to fetch and extract a single page.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		levelDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "level_duration_seconds",
			Help:      "Time to process one BFS level.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 4, 10),
		}),
		vertices: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vertices",
			Help:      "Pages discovered so far.",
		}),
		frontier: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frontier_size",
			Help:      "Pages queued for the next BFS level.",
		}),
		level: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "level",
			Help:      "Number of BFS levels completed.",
		}),
	}
}

// ObserveFetch records one processed page.
func (c *Collector) ObserveFetch(elapsed time.Duration, links int, err error) {
	if c == nil {
		return
	}

	result := ResultOK
	if err != nil {
		result = ResultError
	}
	c.pagesFetched.WithLabelValues(result).Inc()
	c.linksExtracted.Add(float64(links))
	c.fetchDuration.Observe(elapsed.Seconds())
}

// ObserveLevel records a finished level.
func (c *Collector) ObserveLevel(stats model.LevelStats) {
	if c == nil {
		return
	}

	c.levelDuration.Observe(stats.Elapsed.Seconds())
	c.vertices.Set(float64(stats.TotalVertices))
	c.frontier.Set(float64(stats.Discovered))
	c.level.Set(float64(stats.Level + 1))
}

// Handler returns an HTTP handler serving the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve metrics: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
