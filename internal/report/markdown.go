package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs a Markdown document suitable for sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that writes to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders s as Markdown.
func (w *MarkdownWriter) Write(s *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, s)
	w.writeStats(md, s)
	w.writeTopPages(md, s)
	w.writeLevels(md, s)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *Summary) {
	md.H1("wikigraph Report")
	md.PlainText("")

	rows := [][]string{
		{"Graph", "`" + s.Name + "`"},
		{"Generated", s.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if s.Source != "" {
		rows = append(rows, []string{"Source", "`" + s.Source + "`"})
	}
	if s.Duration > 0 {
		rows = append(rows, []string{"Crawl Duration", fmt.Sprintf("%.3fs", s.Duration.Seconds())})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeStats(md *markdown.Markdown, s *Summary) {
	st := s.Stats

	md.H2("Graph Statistics")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Vertices", strconv.Itoa(st.Vertices)},
			{"Edge Records", strconv.Itoa(st.EdgeRecords)},
			{"Links", strconv.Itoa(st.Links)},
			{"Dropped Destinations", strconv.Itoa(st.DroppedDestinations)},
			{"Duplicate Vertices", strconv.Itoa(st.DuplicateVertices)},
			{"Unknown Sources", strconv.Itoa(st.UnknownSources)},
		},
	})
	md.PlainText("")

	switch {
	case st.UnknownSources > 0 || st.DuplicateVertices > 0:
		md.Warningf(
			"The graph files are inconsistent: %d duplicate vertex line(s), %d edge record(s) with an unknown source.",
			st.DuplicateVertices, st.UnknownSources,
		)
	case st.DroppedDestinations > 0:
		md.Note(fmt.Sprintf(
			"%d link(s) point to pages outside the crawl frontier and are not part of the graph.",
			st.DroppedDestinations,
		))
	default:
		md.Tip("Every recorded link points to a known page.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeTopPages(md *markdown.Markdown, s *Summary) {
	md.H2("Top Pages by Out-Degree")
	md.PlainText("")

	if len(s.TopPages) == 0 {
		md.PlainText("The graph is empty.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(s.TopPages))
	for i, d := range s.TopPages {
		rows[i] = []string{strconv.Itoa(i + 1), d.Page, strconv.Itoa(d.Out)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Page", "Outgoing Links"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeLevels(md *markdown.Markdown, s *Summary) {
	if len(s.Levels) == 0 {
		return
	}

	md.H2("Crawl Levels")
	md.PlainText("")

	rows := make([][]string, len(s.Levels))
	for i, l := range s.Levels {
		rows[i] = []string{
			strconv.Itoa(l.Level),
			strconv.Itoa(l.Processed),
			strconv.Itoa(l.Discovered),
			strconv.Itoa(l.Failures),
			fmt.Sprintf("%.2fs", l.Elapsed.Seconds()),
			strconv.Itoa(l.TotalVertices),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Level", "Processed", "Discovered", "Failures", "Elapsed", "Total Vertices"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, s)

	if failures := s.Failures(); failures > 0 {
		md.Warningf("%d page(s) could not be fetched and were recorded without links.", failures)
		md.PlainText("")
	}
}

// writePieChart shows how many new pages each level discovered.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Pages Discovered per Level"),
		piechart.WithShowData(true),
	)

	added := 0
	for _, l := range s.Levels {
		if l.Discovered > 0 {
			chart.LabelAndIntValue("Level "+strconv.Itoa(l.Level), uint64(l.Discovered))
			added++
		}
	}
	if added == 0 {
		return
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [wikigraph](https://github.com/nao1215/wikigraph)*")
}
