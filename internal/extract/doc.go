// Package extract finds linked page identifiers in raw wiki markup.
//
// Extraction is a plain substring scan, not an HTML parse. Only text inside
// <p>...</p> paragraphs is considered, and inside a paragraph every
// occurrence of the anchor prefix <a href="/wiki/ starts a candidate that runs
// up to the next double quote. Candidates in non-article namespaces are
// rejected by prefix.
//
// The scan is deliberately coarse. Anchors with attributes before href,
// paragraphs written as <p class="..."> and relative links outside /wiki/ are
// not recognised, and a truncated anchor at the end of a paragraph yields
// whatever text follows it.
//
// # Usage
//
//	links := extract.Extract(body)
//
//	en := extract.New(extract.WithDenyPrefixes("File", "Category", "Help"))
//	links = en.Extract(body)
package extract
