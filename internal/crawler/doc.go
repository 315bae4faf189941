// Package crawler expands a link graph breadth-first from a seed page.
//
// # Architecture
//
// Crawl works level by level. Every page of the current frontier is fetched
// and scanned for links on a bounded worker pool; once the whole level has
// finished, a single goroutine merges the results: each link that is new to
// the vertex set joins the next frontier, and the level's edge records are
// appended to the crawl's edge list. The next level starts only after the
// merge, so a page's first-discovery level is its crawl depth and the vertex
// set needs no locking.
//
// Edge records within a level appear in the order their fetches finished.
// The final vertex set and the set of reachable pages do not depend on that
// order, but the order of vertices discovered in the same level does.
//
// A page that cannot be fetched or decoded is logged and recorded with no
// links. It is not retried.
//
// # Usage
//
//	pool := pipeline.NewPool(pipeline.WithConcurrency(250))
//	c := crawler.New(fetcher, pool, crawler.WithMaxDepth(3))
//	result, err := c.Crawl(ctx, "Berlin")
package crawler
