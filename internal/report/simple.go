package report

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const ruleWidth = 70

// SimpleWriter outputs plain text for the terminal.
// Numbers are grouped according to the configured language.
type SimpleWriter struct {
	baseWriter

	tag language.Tag
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithLanguage selects the number format, e.g. language.German prints
// 1.234 instead of 1,234.
func WithLanguage(tag language.Tag) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.tag = tag
	}
}

// NewSimpleWriter creates a SimpleWriter that writes to output.
// The default language is English.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		tag:        language.English,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders s as text.
func (w *SimpleWriter) Write(s *Summary) (int, error) {
	var sb strings.Builder
	p := message.NewPrinter(w.tag)

	w.writeHeader(&sb, p, s)
	w.writeStats(&sb, p, s)
	w.writeTopPages(&sb, p, s)
	w.writeLevels(&sb, p, s)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, p *message.Printer, s *Summary) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                         WIKIGRAPH STATISTICS\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	sb.WriteString(p.Sprintf("Graph:                 %s\n", s.Name))
	if s.Source != "" {
		sb.WriteString(p.Sprintf("Source:                %s\n", s.Source))
	}
	if s.Duration > 0 {
		sb.WriteString(p.Sprintf("Crawl duration:        %.3fs\n", s.Duration.Seconds()))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeStats(sb *strings.Builder, p *message.Printer, s *Summary) {
	st := s.Stats
	sb.WriteString(p.Sprintf("Vertices:              %d\n", st.Vertices))
	sb.WriteString(p.Sprintf("Edge records:          %d\n", st.EdgeRecords))
	sb.WriteString(p.Sprintf("Links:                 %d\n", st.Links))
	sb.WriteString(p.Sprintf("Dropped destinations:  %d\n", st.DroppedDestinations))
	if st.DuplicateVertices > 0 {
		sb.WriteString(p.Sprintf("Duplicate vertices:    %d\n", st.DuplicateVertices))
	}
	if st.UnknownSources > 0 {
		sb.WriteString(p.Sprintf("Unknown sources:       %d\n", st.UnknownSources))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeTopPages(sb *strings.Builder, p *message.Printer, s *Summary) {
	if len(s.TopPages) == 0 {
		return
	}

	sb.WriteString("TOP PAGES BY OUT-DEGREE\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	for i, d := range s.TopPages {
		sb.WriteString(p.Sprintf("%3d. %-50s %10d\n", i+1, d.Page, d.Out))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeLevels(sb *strings.Builder, p *message.Printer, s *Summary) {
	if len(s.Levels) == 0 {
		return
	}

	sb.WriteString("LEVELS\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(p.Sprintf("%5s %10s %11s %9s %10s %12s\n",
		"Level", "Processed", "Discovered", "Failures", "Elapsed", "Total"))
	for _, l := range s.Levels {
		sb.WriteString(p.Sprintf("%5d %10d %11d %9d %9.2fs %12d\n",
			l.Level, l.Processed, l.Discovered, l.Failures, l.Elapsed.Seconds(), l.TotalVertices))
	}
	sb.WriteString("\n")
}
