package agent

import (
	"context"

	"github.com/skillsenselab/aurascribe/persona"
)

// Status is the outcome classification of one agent invocation.
type Status string

const (
	StatusSuccess     Status = "success"
	StatusError       Status = "error"
	StatusTimeout     Status = "timeout"
	StatusUnavailable Status = "unavailable"
)

// Confidence is an agent's self-declared confidence in its result.
// The zero value means the agent declared none.
type Confidence string

const (
	ConfidenceUnset  Confidence = ""
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Payload is the shared input handed to every agent in one
// orchestration run.
type Payload struct {
	// Transcript is the accumulated dictation text.
	Transcript string `json:"transcript"`
	// Persona is the selected specialty framing.
	Persona persona.Persona `json:"persona"`
	// Context carries opaque per-request fields (e.g. patient context).
	Context map[string]string `json:"context,omitempty"`
}

// Agent is one specialist processor. Implementations are deterministic
// rule matchers; the contract still allows blocking work, so every Run
// receives a context.
type Agent interface {
	// Name returns the registered agent name.
	Name() string

	// Run processes the payload and returns a tagged output variant
	// with an optional self-declared confidence.
	Run(ctx context.Context, p Payload) (Output, Confidence, error)
}

// Result is the immutable envelope produced by one safe invocation.
type Result struct {
	AgentName       string     `json:"agent_name"`
	Status          Status     `json:"status"`
	Payload         Output     `json:"payload,omitempty"`
	Confidence      Confidence `json:"confidence,omitempty"`
	ExecutionTimeMS int64      `json:"execution_time_ms"`
	// Error is the failure message for error and timeout statuses.
	Error string `json:"error,omitempty"`
}

// Succeeded reports whether the invocation completed normally.
func (r *Result) Succeeded() bool {
	return r.Status == StatusSuccess
}
