// Package report renders graph summaries.
//
// A Summary is built from a loaded graph and, for a fresh crawl, its
// per-level statistics. It can be written as:
//   - SimpleWriter: aligned text with locale-aware number formatting
//   - MarkdownWriter: tables and a mermaid pie chart of discoveries per level
//   - JSONWriter: the Summary itself, for tool integration
//
// All writers implement Writer.
package report
