package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/observability"
)

// RunSafe executes one agent with timing, panic isolation, and deadline
// enforcement. It never returns nil and never propagates a failure: an
// unloaded agent yields an unavailable result without any call attempted,
// a panic or returned error yields an error result, and a context
// deadline yields a timeout result. The context is passed through to the
// agent so a timeout cancels in-flight work rather than abandoning it.
func (r *Registry) RunSafe(ctx context.Context, name string, p Payload) *Result {
	ctx, span := observability.StartSpan(ctx, "agent.run",
		trace.WithAttributes(attribute.String(observability.AttrAgentName, name)))
	defer span.End()

	a, ok := r.Get(name)
	if !ok {
		result := &Result{
			AgentName: name,
			Status:    StatusUnavailable,
			Error:     apperrors.AgentUnavailable(name).Error(),
		}
		recordSpan(span, result)
		return result
	}

	start := time.Now()

	type runOutcome struct {
		output     Output
		confidence Confidence
		err        error
	}
	done := make(chan runOutcome, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				panicErr := fmt.Errorf("agent panic: %v", rec)
				done <- runOutcome{err: apperrors.AgentRuntime(name, panicErr)}
			}
		}()
		output, confidence, err := a.Run(ctx, p)
		done <- runOutcome{output: output, confidence: confidence, err: err}
	}()

	var outcome runOutcome
	select {
	case outcome = <-done:
	case <-ctx.Done():
		elapsed := time.Since(start)
		r.log.Warn("agent timed out", logger.Fields(
			logger.FieldAgent, name,
			logger.FieldDuration, elapsed.Milliseconds(),
		))
		result := &Result{
			AgentName:       name,
			Status:          StatusTimeout,
			ExecutionTimeMS: elapsed.Milliseconds(),
			Error:           ctx.Err().Error(),
		}
		recordSpan(span, result)
		return result
	}

	elapsed := time.Since(start)
	result := &Result{
		AgentName:       name,
		ExecutionTimeMS: elapsed.Milliseconds(),
	}

	switch {
	case outcome.err == nil:
		result.Status = StatusSuccess
		result.Payload = outcome.output
		result.Confidence = outcome.confidence
	case errors.Is(outcome.err, context.DeadlineExceeded):
		result.Status = StatusTimeout
		result.Error = outcome.err.Error()
	default:
		result.Status = StatusError
		result.Error = outcome.err.Error()
		r.log.Error("agent failed", logger.Fields(
			logger.FieldAgent, name,
			logger.FieldError, outcome.err.Error(),
		))
	}
	recordSpan(span, result)
	return result
}

// recordSpan copies the run outcome onto the agent span.
func recordSpan(span trace.Span, res *Result) {
	attrs := []attribute.KeyValue{
		attribute.String(observability.AttrStatus, string(res.Status)),
		attribute.Int64(observability.AttrDurationMs, res.ExecutionTimeMS),
	}
	if res.Error != "" {
		attrs = append(attrs, attribute.String(observability.AttrErrorMessage, res.Error))
	}
	span.SetAttributes(attrs...)
}
