package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtract tests the default extractor against representative markup.
func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "article link is kept",
			content: `<p>Die Stadt <a href="/wiki/Ort:Berlin" title="Berlin">Berlin</a>.</p>`,
			want:    []string{"Ort:Berlin"},
		},
		{
			name:    "category link is dropped",
			content: `<p><a href="/wiki/Kategorie:Test">Test</a></p>`,
			want:    []string{},
		},
		{
			name: "every denied namespace is dropped",
			content: `<p>` +
				`<a href="/wiki/Datei:Bild.png">x</a>` +
				`<a href="/wiki/Kategorie:Stadt">x</a>` +
				`<a href="/wiki/Hilfe:Inhalt">x</a>` +
				`<a href="/wiki/Benutzer:Jemand">x</a>` +
				`<a href="/wiki/Spezial:Suche">x</a>` +
				`<a href="/wiki/Wikipedia:Impressum">x</a>` +
				`<a href="/wiki/Diskussion:Berlin">x</a>` +
				`<a href="/wiki/Hamburg">x</a>` +
				`</p>`,
			want: []string{"Hamburg"},
		},
		{
			name:    "denylist is a plain prefix match",
			content: `<p><a href="/wiki/Dateiformat">x</a><a href="/wiki/Datenbank">y</a></p>`,
			want:    []string{"Datenbank"},
		},
		{
			name:    "links outside paragraphs are ignored",
			content: `<div><a href="/wiki/Navigation">n</a></div><p><a href="/wiki/Inhalt">i</a></p><a href="/wiki/Fuss">f</a>`,
			want:    []string{"Inhalt"},
		},
		{
			name:    "multiple paragraphs keep document order",
			content: `<p><a href="/wiki/A">a</a> <a href="/wiki/B">b</a></p><p><a href="/wiki/C">c</a></p>`,
			want:    []string{"A", "B", "C"},
		},
		{
			name:    "duplicates are preserved",
			content: `<p><a href="/wiki/A">a</a><a href="/wiki/A">a</a></p>`,
			want:    []string{"A", "A"},
		},
		{
			name:    "unclosed paragraph runs to the next paragraph",
			content: `<p><a href="/wiki/A">a</a><p><a href="/wiki/B">b</a></p>`,
			want:    []string{"A", "B"},
		},
		{
			name:    "unclosed last paragraph runs to end of content",
			content: `<p><a href="/wiki/A">a</a>`,
			want:    []string{"A"},
		},
		{
			name:    "truncated anchor yields text to paragraph end",
			content: `<p><a href="/wiki/Kaputt</p>`,
			want:    []string{"Kaputt"},
		},
		{
			name:    "percent-encoded identifiers are not decoded",
			content: `<p><a href="/wiki/K%C3%B6ln">Köln</a></p>`,
			want:    []string{"K%C3%B6ln"},
		},
		{
			name:    "paragraph with attributes is not recognised",
			content: `<p class="lead"><a href="/wiki/A">a</a></p>`,
			want:    []string{},
		},
		{
			name:    "external links are ignored",
			content: `<p><a href="https://example.org/wiki/A">a</a></p>`,
			want:    []string{},
		},
		{
			name:    "empty content",
			content: "",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Extract(tt.content))
		})
	}
}

// TestNewWithOptions tests extractors configured for another wiki edition.
func TestNewWithOptions(t *testing.T) {
	t.Parallel()

	t.Run("custom denylist", func(t *testing.T) {
		t.Parallel()

		e := New(WithDenyPrefixes("Category", "File"))
		content := `<p><a href="/wiki/Category:Cities">c</a><a href="/wiki/Kategorie:Test">k</a><a href="/wiki/Paris">p</a></p>`
		assert.Equal(t, []string{"Kategorie:Test", "Paris"}, e.Extract(content))
	})

	t.Run("empty denylist keeps everything", func(t *testing.T) {
		t.Parallel()

		e := New(WithDenyPrefixes())
		assert.Equal(t, []string{"Kategorie:Test"}, e.Extract(`<p><a href="/wiki/Kategorie:Test">k</a></p>`))
	})

	t.Run("custom anchor prefix", func(t *testing.T) {
		t.Parallel()

		e := New(WithAnchorPrefix(`<a href="/w/`))
		content := `<p><a href="/w/Main">m</a><a href="/wiki/Other">o</a></p>`
		assert.Equal(t, []string{"Main"}, e.Extract(content))
	})

	t.Run("empty anchor prefix keeps default", func(t *testing.T) {
		t.Parallel()

		e := New(WithAnchorPrefix(""))
		assert.Equal(t, []string{"A"}, e.Extract(`<p><a href="/wiki/A">a</a></p>`))
	})

	t.Run("options do not alias the caller slice", func(t *testing.T) {
		t.Parallel()

		prefixes := []string{"X"}
		e := New(WithDenyPrefixes(prefixes...))
		prefixes[0] = "Y"
		assert.Equal(t, []string{"Y1"}, e.Extract(`<p><a href="/wiki/X1">x</a><a href="/wiki/Y1">y</a></p>`))
	})
}
