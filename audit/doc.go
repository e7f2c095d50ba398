// Package audit publishes clinical activity events to Kafka. Dictation
// is subject to record-keeping obligations, so session lifecycle changes
// and orchestration runs are emitted as structured events. When Kafka is
// disabled events are dropped with a debug log instead of failing the
// request path.
package audit
