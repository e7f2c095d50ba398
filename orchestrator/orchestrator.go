package orchestrator

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/aurascribe/agent"
	"github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/observability"
	"github.com/skillsenselab/aurascribe/persona"
	"github.com/skillsenselab/aurascribe/resilience"
)

// Confidence weights applied when averaging agent results.
const (
	weightHigh       = 1.0
	weightMedium     = 0.7
	weightLow        = 0.4
	weightUndeclared = 0.6
	weightEmpty      = 0.3
)

// Confidence bucket thresholds for the overall level.
const (
	mediumThreshold = 0.5
	highThreshold   = 0.8
)

// Stats carries run-level timing and pool figures.
type Stats struct {
	TotalTimeMS  int64 `json:"total_time_ms"`
	Workers      int   `json:"workers"`
	SuccessCount int   `json:"success_count"`
}

// Result is the aggregate of one orchestration run.
type Result struct {
	Transcript        string                   `json:"transcript"`
	Persona           persona.Persona          `json:"persona"`
	AgentResults      map[string]*agent.Result `json:"agent_results"`
	AgentsExecuted    []string                 `json:"agents_executed"`
	AgentsFailed      []string                 `json:"agents_failed,omitempty"`
	OverallConfidence float64                  `json:"overall_confidence"`
	ConfidenceLevel   string                   `json:"confidence_level"`
	Summary           string                   `json:"summary"`
	Stats             Stats                    `json:"stats"`
}

// Orchestrator coordinates the parallel agent fan-out.
type Orchestrator struct {
	cfg  Config
	reg  *agent.Registry
	pool *resilience.Bulkhead
	log  *logger.Logger
}

// New creates an orchestrator over the given registry.
func New(cfg Config, reg *agent.Registry, log *logger.Logger) (*Orchestrator, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pool := resilience.NewBulkhead(resilience.BulkheadConfig{
		Name:          "agent-pool",
		MaxConcurrent: cfg.Workers,
		MaxWait:       -1,
	})
	return &Orchestrator{
		cfg:  cfg,
		reg:  reg,
		pool: pool,
		log:  log.WithComponent("orchestrator"),
	}, nil
}

// Orchestrate runs every loaded agent against the transcript and
// aggregates the results. Every loaded agent gets exactly one entry in
// AgentResults regardless of how its invocation ends.
func (o *Orchestrator) Orchestrate(ctx context.Context, transcript, personaKey string, patientContext map[string]string) (*Result, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, errors.Validation("transcript is required")
	}

	start := time.Now()
	p := persona.Lookup(personaKey)
	payload := agent.Payload{
		Transcript: transcript,
		Persona:    p,
		Context:    patientContext,
	}

	names := o.reg.Names()
	ctx, span := observability.StartSpan(ctx, "orchestrate",
		trace.WithAttributes(
			attribute.String(observability.AttrPersona, p.Key),
			attribute.Int(observability.AttrAgentCount, len(names)),
			attribute.Int(observability.AttrTranscriptLen, len(transcript)),
		))
	defer span.End()

	o.log.Info("orchestration started", logger.Fields(
		"agent_count", len(names),
		logger.FieldPersona, p.Key,
		"transcript_words", len(strings.Fields(transcript)),
	))

	results := make(map[string]*agent.Result, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			var res *agent.Result
			err := o.pool.Execute(ctx, func() error {
				agentCtx, cancel := context.WithTimeout(ctx, o.cfg.agentTimeout())
				defer cancel()
				res = o.reg.RunSafe(agentCtx, name, payload)
				return nil
			})
			if err != nil {
				// The run was cancelled while waiting for a pool slot.
				res = &agent.Result{
					AgentName: name,
					Status:    agent.StatusTimeout,
					Error:     err.Error(),
				}
			}
			mu.Lock()
			results[name] = res
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	out := &Result{
		Transcript:   transcript,
		Persona:      p,
		AgentResults: results,
	}
	for _, name := range names {
		res := results[name]
		if res.Succeeded() {
			out.AgentsExecuted = append(out.AgentsExecuted, name)
			out.Stats.SuccessCount++
		} else {
			out.AgentsFailed = append(out.AgentsFailed, name)
		}
	}
	out.OverallConfidence = overallConfidence(names, results)
	out.ConfidenceLevel = confidenceLevel(out.OverallConfidence)
	out.Summary = synthesizeSummary(names, results)
	out.Stats.TotalTimeMS = time.Since(start).Milliseconds()
	out.Stats.Workers = o.pool.MaxConcurrent()

	o.log.Info("orchestration complete", logger.Fields(
		"success_count", out.Stats.SuccessCount,
		"failed_count", len(out.AgentsFailed),
		"overall_confidence", out.OverallConfidence,
		logger.FieldDuration, out.Stats.TotalTimeMS,
	))
	return out, nil
}

// resultWeight maps one result to its contribution to the overall score.
func resultWeight(res *agent.Result) float64 {
	if !res.Succeeded() {
		return 0
	}
	if res.Payload == nil || res.Payload.Empty() {
		return weightEmpty
	}
	switch res.Confidence {
	case agent.ConfidenceHigh:
		return weightHigh
	case agent.ConfidenceMedium:
		return weightMedium
	case agent.ConfidenceLow:
		return weightLow
	default:
		return weightUndeclared
	}
}

func overallConfidence(names []string, results map[string]*agent.Result) float64 {
	if len(names) == 0 {
		return 0
	}
	var sum float64
	for _, name := range names {
		sum += resultWeight(results[name])
	}
	return sum / float64(len(names))
}

func confidenceLevel(score float64) string {
	switch {
	case score >= highThreshold:
		return "high"
	case score >= mediumThreshold:
		return "medium"
	default:
		return "low"
	}
}
