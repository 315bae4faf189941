// Package pipeline runs a batch of independent page jobs with bounded
// concurrency.
//
// ProcessBatch hands each input to a worker function on a shared Pool and
// collects the results as they finish. A failed job reports through its own
// result and never cancels its siblings; only context cancellation stops the
// batch early.
package pipeline
