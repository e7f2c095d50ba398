// Package agent defines the specialist processor contract and the safe
// invocation boundary around it.
//
// Every processor implements Agent and is consumed exclusively through
// Registry.RunSafe, which times the call, recovers panics into error
// results, enforces the caller's context deadline, and reports processors
// that failed to load as unavailable. Orchestration code never assumes a
// processor call cannot fail.
//
// Processor outputs form a closed set of tagged variants (Documentation,
// Alert, Billing, Tasks, Prescription, Compliance) so downstream summary
// logic pattern-matches on concrete shapes instead of probing maps for
// optional keys.
package agent
