package extract

import "strings"

// Markers used by the scanner.
const (
	// ParagraphOpen starts a region that is scanned for anchors.
	ParagraphOpen = "<p>"

	// ParagraphClose ends a scanned region.
	ParagraphClose = "</p>"

	// DefaultAnchorPrefix precedes the page identifier of an article link.
	DefaultAnchorPrefix = `<a href="/wiki/`

	// quote terminates a candidate.
	quote = `"`
)

// DefaultDenyPrefixes are the German Wikipedia namespaces that never name an
// article: file, category, help, user, special, project and talk pages.
var DefaultDenyPrefixes = []string{
	"Datei",
	"Kategorie",
	"Hilfe",
	"Benutzer",
	"Spezial",
	"Wikipedia",
	"Diskussion",
}

// Extractor scans page content for links to other pages.
// An Extractor is immutable after construction and safe for concurrent use.
type Extractor struct {
	anchorPrefix string
	denyPrefixes []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDenyPrefixes replaces the namespace denylist.
// A candidate is rejected when it starts with any of the prefixes.
func WithDenyPrefixes(prefixes ...string) Option {
	return func(e *Extractor) {
		e.denyPrefixes = append([]string(nil), prefixes...)
	}
}

// WithAnchorPrefix replaces the marker that introduces a link.
// Empty values are ignored.
func WithAnchorPrefix(prefix string) Option {
	return func(e *Extractor) {
		if prefix != "" {
			e.anchorPrefix = prefix
		}
	}
}

// New creates an Extractor. Without options it behaves like Extract.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		anchorPrefix: DefaultAnchorPrefix,
		denyPrefixes: DefaultDenyPrefixes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = New()

// Extract returns the links found in content using the default markers and
// denylist.
func Extract(content string) []string {
	return defaultExtractor.Extract(content)
}

// Extract returns the candidate page identifiers in content, in the order
// they appear. It never fails; content without paragraphs or anchors yields
// an empty result.
func (e *Extractor) Extract(content string) []string {
	links := make([]string, 0)

	rest := content
	for {
		start := strings.Index(rest, ParagraphOpen)
		if start < 0 {
			break
		}
		rest = rest[start+len(ParagraphOpen):]

		// A paragraph without a close marker runs until the next open marker.
		para := rest
		if next := strings.Index(para, ParagraphOpen); next >= 0 {
			para = para[:next]
		}
		if end := strings.Index(para, ParagraphClose); end >= 0 {
			para = para[:end]
		}

		links = e.scanParagraph(para, links)
	}

	return links
}

// scanParagraph appends the accepted candidates of one paragraph to links.
func (e *Extractor) scanParagraph(para string, links []string) []string {
	rest := para
	for {
		start := strings.Index(rest, e.anchorPrefix)
		if start < 0 {
			return links
		}
		rest = rest[start+len(e.anchorPrefix):]

		candidate := rest
		if next := strings.Index(candidate, e.anchorPrefix); next >= 0 {
			candidate = candidate[:next]
		}
		if end := strings.Index(candidate, quote); end >= 0 {
			candidate = candidate[:end]
		}

		if e.allowed(candidate) {
			links = append(links, candidate)
		}
	}
}

// allowed reports whether candidate is outside every denied namespace.
func (e *Extractor) allowed(candidate string) bool {
	for _, prefix := range e.denyPrefixes {
		if strings.HasPrefix(candidate, prefix) {
			return false
		}
	}
	return true
}
