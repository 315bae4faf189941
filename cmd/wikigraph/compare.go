package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/nao1215/wikigraph/internal/database"
	"github.com/nao1215/wikigraph/internal/model"
)

// maxListedPages caps the pages printed per section in text output.
const maxListedPages = 20

// CrawlComparison describes how a later crawl differs from an earlier one.
type CrawlComparison struct {
	Previous database.CrawlRecord `json:"previous"`
	Current  database.CrawlRecord `json:"current"`

	// AddedPages are vertices of Current that Previous did not reach.
	AddedPages []string `json:"added_pages"`

	// RemovedPages are vertices of Previous that Current did not reach.
	RemovedPages []string `json:"removed_pages"`

	UnchangedPages int `json:"unchanged_pages"`
	LinkDelta      int `json:"link_delta"`
}

func newDBCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <previous-id> <current-id>",
		Short: "Show how two archived crawls differ",
		Long: heredoc.Doc(`
			Compare loads two archived crawls and lists the pages that only one of
			them reached, together with the change in vertex, edge record and link
			counts. Use 'wikigraph db list' to find crawl ids.
		`),
		Example: heredoc.Doc(`
			$ wikigraph db compare 0b8f6c1e-8d7a-4a47-9a55-5c1f0e0a2f13 5d2c9a70-1f3e-4c1b-b7a4-2e6a9f1d8c55
			$ wikigraph db compare <old> <new> --json
		`),
		Args: cobra.ExactArgs(2),
		RunE: runDBCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output the comparison in JSON format")
	return cmd
}

func runDBCompareCmd(cmd *cobra.Command, args []string) error {
	setupLogger(cmd)

	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	previous, err := db.LoadCrawl(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	current, err := db.LoadCrawl(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	result := compareCrawls(previous, current)

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	outputComparisonText(cmd.OutOrStdout(), result)
	return nil
}

// compareCrawls diffs the vertex sets of two crawls. Page lists keep the
// discovery order of the crawl they come from.
func compareCrawls(previous, current *database.Crawl) *CrawlComparison {
	result := &CrawlComparison{
		Previous:     previous.CrawlRecord,
		Current:      current.CrawlRecord,
		AddedPages:   []string{},
		RemovedPages: []string{},
		LinkDelta:    model.CountLinks(current.Edges) - model.CountLinks(previous.Edges),
	}

	before := model.NewVertexSet(previous.Vertices...)
	after := model.NewVertexSet(current.Vertices...)

	for _, v := range after.Items() {
		if before.Contains(v) {
			result.UnchangedPages++
		} else {
			result.AddedPages = append(result.AddedPages, v)
		}
	}
	for _, v := range before.Items() {
		if !after.Contains(v) {
			result.RemovedPages = append(result.RemovedPages, v)
		}
	}

	return result
}

func outputComparisonText(out io.Writer, result *CrawlComparison) {
	fmt.Fprintf(out, "Crawl Comparison: %s -> %s\n", result.Previous.Seed, result.Current.Seed)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nPrevious crawl: %s  %s\n", result.Previous.ID, result.Previous.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Current crawl:  %s  %s\n", result.Current.ID, result.Current.StartedAt.Local().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(out, "\n  %-14s  %-10s  %-10s  %-10s\n", "", "Previous", "Current", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
	fmt.Fprintf(out, "  %-14s  %-10d  %-10d  %-10s\n", "Vertices",
		result.Previous.VertexCount, result.Current.VertexCount,
		formatDelta(result.Current.VertexCount-result.Previous.VertexCount))
	fmt.Fprintf(out, "  %-14s  %-10d  %-10d  %-10s\n", "Edge records",
		result.Previous.RecordCount, result.Current.RecordCount,
		formatDelta(result.Current.RecordCount-result.Previous.RecordCount))
	fmt.Fprintf(out, "  %-14s  %-10s  %-10s  %-10s\n", "Links", "", "", formatDelta(result.LinkDelta))

	printPageList(out, "New Pages", "+", result.AddedPages)
	printPageList(out, "Missing Pages", "-", result.RemovedPages)

	if result.UnchangedPages > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d pages\n", result.UnchangedPages)
	}
}

func printPageList(out io.Writer, title, marker string, pages []string) {
	if len(pages) == 0 {
		return
	}

	fmt.Fprintf(out, "\n%s (%d):\n", title, len(pages))
	for i, p := range pages {
		if i == maxListedPages {
			fmt.Fprintf(out, "  ... and %d more\n", len(pages)-maxListedPages)
			break
		}
		fmt.Fprintf(out, "  [%s] %s\n", marker, p)
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
