package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/wikigraph/internal/database"
	"github.com/nao1215/wikigraph/internal/model"
	"github.com/nao1215/wikigraph/internal/store"
)

// NewDBCmd creates the db command group.
func NewDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the SQLite archive of crawls",
		Long: heredoc.Doc(`
			The archive (wikigraph.db) keeps every crawl run with --db together with
			its per-level statistics. Graphs can be exported into it from a directory,
			restored from it into a directory and compared with each other.
		`),
	}

	cmd.PersistentFlags().String("db-dir", "", "Directory of the SQLite database (default: XDG data directory)")

	cmd.AddCommand(newDBExportCmd())
	cmd.AddCommand(newDBListCmd())
	cmd.AddCommand(newDBRestoreCmd())
	cmd.AddCommand(newDBCompareCmd())

	return cmd
}

func newDBExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <graph>",
		Short: "Copy a stored graph into the archive",
		Example: heredoc.Doc(`
			$ wikigraph db export Berlin
			$ wikigraph db export data/Berlin --db-dir /var/lib/wikigraph
		`),
		Args: cobra.ExactArgs(1),
		RunE: runDBExportCmd,
	}
	addDataDirFlag(cmd)
	return cmd
}

func newDBListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived crawls, most recent first",
		Args:  cobra.NoArgs,
		RunE:  runDBListCmd,
	}
}

func newDBRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <crawl-id> <dir>",
		Short: "Write an archived crawl to a graph directory",
		Example: heredoc.Doc(`
			$ wikigraph db restore 0b8f6c1e-8d7a-4a47-9a55-5c1f0e0a2f13 data/Berlin-2026
		`),
		Args: cobra.ExactArgs(2),
		RunE: runDBRestoreCmd,
	}
}

// openDB opens the archive named by --db-dir, the configuration file or
// the XDG default, in that order.
func openDB(cmd *cobra.Command) (*database.GraphDB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db-dir") {
		if cfg.DBDir, err = cmd.Flags().GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func runDBExportCmd(cmd *cobra.Command, args []string) error {
	setupLogger(cmd)

	dir, err := resolveGraphDir(cmd, args[0])
	if err != nil {
		return err
	}
	vertices, edges, err := store.Read(dir)
	if err != nil {
		return fmt.Errorf("failed to read graph from %s: %w", dir, err)
	}

	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	seed := filepath.Base(dir)
	if len(vertices) > 0 {
		seed = vertices[0]
	}

	id, err := db.SaveCrawl(cmd.Context(), &database.Crawl{
		CrawlRecord: database.CrawlRecord{
			Seed:      seed,
			StartedAt: time.Now(),
		},
		Vertices: vertices,
		Edges:    edges,
	})
	if err != nil {
		return fmt.Errorf("failed to archive graph: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archived %s as %s\n", dir, id)
	return nil
}

func runDBListCmd(cmd *cobra.Command, _ []string) error {
	setupLogger(cmd)

	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	crawls, err := db.ListCrawls(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(crawls) == 0 {
		fmt.Fprintf(out, "No archived crawls in %s\n", db.Path())
		return nil
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(out, "%-36s  %-20s  %-30s  %10s  %10s\n", "ID", "STARTED", "SEED", "VERTICES", "RECORDS")
	for _, c := range crawls {
		p.Fprintf(out, "%-36s  %-20s  %-30s  %10d  %10d\n",
			c.ID, c.StartedAt.Local().Format("2006-01-02 15:04:05"), c.Seed, c.VertexCount, c.RecordCount)
	}
	return nil
}

func runDBRestoreCmd(cmd *cobra.Command, args []string) error {
	setupLogger(cmd)

	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	crawl, err := db.LoadCrawl(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	dir := args[1]
	if err := store.Save(dir, model.NewVertexSet(crawl.Vertices...), crawl.Edges); err != nil {
		return fmt.Errorf("failed to save graph: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored crawl %s (%s) to %s\n", crawl.ID, crawl.Seed, dir)
	return nil
}
