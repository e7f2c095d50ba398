// Package session manages dictation session state.
//
// A session represents one live dictation encounter. State lives in Redis
// with a configurable TTL (24h by default) so abandoned sessions expire on
// their own. When Redis is unreachable the store transparently falls back
// to an in-process map. The fallback does not expire entries; that
// divergence is logged on every fallback write and the data survives only
// until process restart.
package session
