// Package database archives crawls in a SQLite database (wikigraph.db).
//
// The text files written by the store package are the primary output of a
// crawl and hold exactly one graph per directory. The archive keeps every
// crawl that was run with --db, together with its per-level statistics, so
// that old graphs can be listed and restored into a directory later.
//
// SQLite is accessed through modernc.org/sqlite, a CGO-free driver, with a
// single open connection and WAL journaling.
package database
