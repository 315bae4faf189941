package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/nao1215/wikigraph/internal/config"
	"github.com/nao1215/wikigraph/internal/log"
)

// NewRootCmd creates the root command for wikigraph.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikigraph",
		Short: "Crawl the link graph of a wiki and find shortest paths",
		Long: heredoc.Doc(`
			wikigraph crawls the article link graph of a MediaWiki site, starting from
			a seed page and expanding one breadth-first level at a time. The graph is
			written to <data-dir>/<seed>/vertices.txt and edges.txt and can then be
			queried for the shortest chain of links between two pages.

			By default the German Wikipedia is crawled. Use --base-url or the
			configuration file (.wikigraph) to point wikigraph at another wiki.
		`),
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .wikigraph in current, XDG config or home directory)")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewPathCmd())
	cmd.AddCommand(NewNeighborsCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewDBCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the process logger from the persistent flags and
// installs it as the slog default.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	jsonLogs, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		jsonLogs = false
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd), jsonLogs)
	slog.SetDefault(logger)
	return logger
}

// loadConfig returns the defaults overlaid with the configuration file.
// A file named with --config must exist; otherwise a missing file is fine.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		return cfg, nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	file.Apply(cfg)

	return cfg, nil
}
