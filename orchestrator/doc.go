// Package orchestrator fans a finalized transcript out to every loaded
// agent in parallel, bounds concurrency with a shared worker pool, and
// aggregates the per-agent results into a single report with an overall
// confidence score and a synthesized summary.
package orchestrator
