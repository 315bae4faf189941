package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/nao1215/wikigraph/internal/config"
	"github.com/nao1215/wikigraph/internal/crawler"
	"github.com/nao1215/wikigraph/internal/database"
	"github.com/nao1215/wikigraph/internal/extract"
	"github.com/nao1215/wikigraph/internal/fetch"
	"github.com/nao1215/wikigraph/internal/graph"
	"github.com/nao1215/wikigraph/internal/metrics"
	"github.com/nao1215/wikigraph/internal/model"
	"github.com/nao1215/wikigraph/internal/pipeline"
	"github.com/nao1215/wikigraph/internal/report"
	"github.com/nao1215/wikigraph/internal/store"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed]",
		Short: "Crawl the link graph reachable from a seed page",
		Long: heredoc.Doc(`
			Crawl expands the link graph from a seed page one breadth-first level at a
			time. All pages of a level are fetched concurrently; links found on them
			form the next level. Pages that cannot be fetched are recorded without
			links and do not stop the crawl.

			When the crawl finishes, the graph is written to
			<data-dir>/<seed>/vertices.txt and <data-dir>/<seed>/edges.txt, with "/"
			in the seed replaced by "_".
		`),
		Example: heredoc.Doc(`
			# Crawl two levels starting at "Angela_Merkel"
			$ wikigraph crawl Angela_Merkel -m 2

			# Same, with the seed given as a flag and 50 workers
			$ wikigraph crawl -s Angela_Merkel -m 2 -t 50

			# Crawl the English Wikipedia through a local Tor daemon
			$ wikigraph crawl Go_\(programming_language\) --base-url https://en.wikipedia.org/wiki/ --proxy 127.0.0.1:9050

			# Archive the crawl and write a Markdown summary
			$ wikigraph crawl Berlin -m 3 --db --report berlin.md
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().StringP("scan-url", "s", "", "Seed page name (alternative to the positional argument)")
	cmd.Flags().IntP("max-depth", "m", config.DefaultMaxDepth, "Number of breadth-first levels to expand")
	cmd.Flags().IntP("threads", "t", config.DefaultWorkers, "Number of pages fetched concurrently")
	cmd.Flags().String("data-dir", config.DefaultDataDir, "Directory below which the graph is written")
	cmd.Flags().String("base-url", config.DefaultBaseURL, "Article URL prefix of the wiki")
	cmd.Flags().Duration("timeout", config.DefaultTimeout, "Timeout of a single page request")
	cmd.Flags().String("proxy", "", "SOCKS5 proxy address (host:port)")
	cmd.Flags().Bool("db", false, "Also archive the crawl in the SQLite database")
	cmd.Flags().String("db-dir", "", "Directory of the SQLite database (default: XDG data directory)")
	cmd.Flags().String("report", "", "Write a Markdown summary of the crawl to this file")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while crawling (e.g. :9090)")

	return cmd
}

func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCrawl(ctx, cfg, logger, cmd.OutOrStdout())
}

// buildCrawlConfig layers defaults, the configuration file and the flags
// the user set explicitly.
func buildCrawlConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if len(args) > 0 {
		cfg.Seed = args[0]
	} else if cfg.Seed, err = flags.GetString("scan-url"); err != nil {
		return nil, err
	}

	if flags.Changed("max-depth") {
		if cfg.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("threads") {
		if cfg.Workers, err = flags.GetInt("threads"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("data-dir") {
		if cfg.DataDir, err = flags.GetString("data-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("base-url") {
		if cfg.BaseURL, err = flags.GetString("base-url"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.SaveToDB, err = flags.GetBool("db"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("report"); err != nil {
		return nil, err
	}
	if cfg.MetricsAddr, err = flags.GetString("metrics-addr"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runCrawl performs the crawl described by cfg and persists the result.
// Nothing is written when the crawl is interrupted.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	client, err := fetch.NewHTTPClient(fetch.ClientOptions{
		Timeout:         cfg.Timeout,
		ProxyAddress:    cfg.ProxyAddress,
		MaxConnsPerHost: cfg.Workers,
		Headers:         cfg.Headers,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}

	fetcher := fetch.NewHTTPFetcher(client,
		fetch.WithBaseURL(cfg.BaseURL),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithLogger(logger),
	)

	var extractorOpts []extract.Option
	if cfg.DenyPrefixes != nil {
		extractorOpts = append(extractorOpts, extract.WithDenyPrefixes(cfg.DenyPrefixes...))
	}

	pool := pipeline.NewPool(
		pipeline.WithConcurrency(cfg.Workers),
		pipeline.WithLogger(logger),
	)

	crawlerOpts := []crawler.Option{
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithExtractor(extract.New(extractorOpts...)),
		crawler.WithLogger(logger),
		crawler.WithLevelHook(levelPrinter(out)),
	}

	if cfg.MetricsAddr != "" {
		collector := metrics.New()
		crawlerOpts = append(crawlerOpts, crawler.WithMetrics(collector))
		go func() {
			if err := collector.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	fmt.Fprintf(out, "Scanning: %s with max depth: %d and %d threads\n", cfg.Seed, cfg.MaxDepth, cfg.Workers)

	result, err := crawler.New(fetcher, pool, crawlerOpts...).Crawl(ctx, cfg.Seed)
	if err != nil {
		return err
	}

	dir := store.SeedDir(cfg.DataDir, cfg.Seed)
	if err := store.Save(dir, result.Vertices, result.Edges); err != nil {
		return fmt.Errorf("failed to save graph: %w", err)
	}
	fmt.Fprintf(out, "Saved %d pages and %d edge records to %s\n", result.Vertices.Len(), len(result.Edges), dir)

	if cfg.SaveToDB {
		id, err := archiveCrawl(ctx, cfg, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Archived crawl as %s\n", id)
	}

	if cfg.ReportFile != "" {
		if err := writeCrawlReport(cfg.ReportFile, dir, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written to %s\n", cfg.ReportFile)
	}

	return nil
}

// levelPrinter reports the throughput of each finished level.
func levelPrinter(out io.Writer) func(model.LevelStats) {
	return func(l model.LevelStats) {
		fmt.Fprintf(out, "%d: %d links in %gs\n", l.Level, l.Processed, l.Elapsed.Seconds())
		fmt.Fprintf(out, "   Links per Second: %g\n", l.LinksPerSecond())
		fmt.Fprintf(out, "   Total Links: %d\n", l.TotalVertices)
	}
}

func archiveCrawl(ctx context.Context, cfg *config.Config, result *crawler.Result) (string, error) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveCrawl(ctx, &database.Crawl{
		CrawlRecord: database.CrawlRecord{
			Seed:      result.Seed,
			MaxDepth:  cfg.MaxDepth,
			StartedAt: result.StartedAt,
			Duration:  result.Duration,
		},
		Vertices: result.Vertices.Items(),
		Edges:    result.Edges,
		Levels:   result.Levels,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive crawl: %w", err)
	}
	return id, nil
}

func writeCrawlReport(path, dir string, result *crawler.Result) error {
	summary := report.NewSummary(result.Seed, graph.New(result.Vertices.Items(), result.Edges), report.DefaultTopPages)
	summary.Source = dir
	summary.Version = getVersion()
	summary.Levels = result.Levels
	summary.Duration = result.Duration

	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := report.NewMarkdownWriter(f).Write(summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// createOutputFile creates path and any missing parent directories.
func createOutputFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
