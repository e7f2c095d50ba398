// Package resilience provides retry and concurrency-limiting primitives.
//
// Retry wraps transient operations, such as transcription provider calls,
// with exponential backoff. Bulkhead bounds concurrent work and backs the
// orchestrator's agent worker pool:
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{
//	    Name: "agents", MaxConcurrent: 6, MaxWait: -1,
//	})
//	err := bh.Execute(ctx, func() error { return runAgent(ctx) })
package resilience
