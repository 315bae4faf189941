package main

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/nao1215/wikigraph/internal/config"
	"github.com/nao1215/wikigraph/internal/report"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <graph>",
		Short: "Summarise a stored graph",
		Long: heredoc.Doc(`
			Stats loads a stored graph and prints its size, the pages with the most
			outgoing links and how many recorded links point outside the graph.
			Links are dropped at load time when their destination was discovered but
			never became a vertex, which happens for pages found in the last level.
		`),
		Example: heredoc.Doc(`
			$ wikigraph stats Berlin
			$ wikigraph stats data/Berlin --markdown -o berlin.md
			$ wikigraph stats Berlin --json --top 50
		`),
		Args: cobra.ExactArgs(1),
		RunE: runStatsCmd,
	}

	addDataDirFlag(cmd)
	cmd.Flags().BoolP("json", "j", false, "Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false, "Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file (creates directories if needed)")
	cmd.Flags().IntP("top", "n", report.DefaultTopPages, "Number of pages listed by out-degree")

	return cmd
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	setupLogger(cmd)

	flags := cmd.Flags()
	jsonOut, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return config.ErrConflictingReportFormats
	}
	output, err := flags.GetString("output")
	if err != nil {
		return err
	}
	top, err := flags.GetInt("top")
	if err != nil {
		return err
	}

	g, dir, err := loadGraph(cmd, args[0])
	if err != nil {
		return err
	}

	summary := report.NewSummary(args[0], g, top)
	summary.Source = dir
	summary.Version = getVersion()

	out := cmd.OutOrStdout()
	if output != "" {
		f, err := createOutputFile(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if _, err := newReportWriter(out, jsonOut, markdownOut).Write(summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if output != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
	}
	return nil
}

func newReportWriter(out io.Writer, jsonOut, markdownOut bool) report.Writer {
	switch {
	case jsonOut:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case markdownOut:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out)
	}
}
