// Package main provides the entry point for the wikigraph CLI.
//
// wikigraph crawls the article link graph of a MediaWiki site level by
// level, stores it as two text files and answers shortest-path queries
// over the stored graph.
//
// Usage:
//
//	wikigraph crawl <page>
//	wikigraph path <page-or-dir>
//
// See --help for all available options.
package main

func main() {
	Execute()
}
