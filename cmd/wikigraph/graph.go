package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikigraph/internal/config"
	"github.com/nao1215/wikigraph/internal/graph"
	"github.com/nao1215/wikigraph/internal/store"
)

// addDataDirFlag registers --data-dir on commands that read a stored graph.
func addDataDirFlag(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", config.DefaultDataDir,
		"Directory in which seed names are resolved")
}

// resolveGraphDir turns the graph argument into a directory. An existing
// directory is used as is; anything else is treated as a seed name below
// the data directory.
func resolveGraphDir(cmd *cobra.Command, arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return arg, nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	if cmd.Flags().Changed("data-dir") {
		if cfg.DataDir, err = cmd.Flags().GetString("data-dir"); err != nil {
			return "", err
		}
	}

	return store.SeedDir(cfg.DataDir, arg), nil
}

// loadGraph resolves arg and loads the graph stored there.
func loadGraph(cmd *cobra.Command, arg string) (*graph.Graph, string, error) {
	dir, err := resolveGraphDir(cmd, arg)
	if err != nil {
		return nil, "", err
	}

	g, err := store.Load(dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load graph from %s: %w", dir, err)
	}
	return g, dir, nil
}
