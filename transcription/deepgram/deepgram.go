// Package deepgram implements transcription.Provider against a
// self-hosted Deepgram instance over its /v1/listen HTTP API.
//
// A failed or empty primary attempt triggers an ordered fallback chain of
// (model, language) combinations. Combinations identical to one already
// attempted are skipped, and the chain stops at the first success with a
// non-empty transcript.
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/observability"
	"github.com/skillsenselab/aurascribe/resilience"
	"github.com/skillsenselab/aurascribe/transcription"
)

// ProviderName is the registered name for the Deepgram provider.
const ProviderName = "deepgram"

// Provider implements transcription.Provider using a Deepgram HTTP instance.
type Provider struct {
	cfg    Config
	client *http.Client
	log    *logger.Logger
	retry  resilience.RetryConfig
}

// New creates a new Deepgram transcription provider.
func New(cfg Config, log *logger.Logger) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("deepgram config: %w", err)
	}

	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.timeout()},
		log:    log.WithComponent("deepgram"),
		retry: resilience.RetryConfig{
			MaxAttempts: cfg.RetryAttempts,
			RetryIf:     resilience.RetryAppErrors,
		},
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Deepgram instance is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.cfg.URL+"/v1/listen", nil)
	if err != nil {
		return false
	}
	p.setAuth(req)
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}

// CheckHealth reports the speech backend. An unreachable backend
// degrades rather than fails: dictation sessions keep accepting audio
// and chunks are acknowledged without transcription.
func (p *Provider) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{Name: "transcription", Status: observability.HealthStatusUp}
	if !p.IsAvailable(ctx) {
		h.Status = observability.HealthStatusDegraded
		h.Message = "speech backend unreachable"
	}
	return h
}

// combo is one (model, language) pair in the fallback chain.
type combo struct {
	model    string
	language string
}

// Transcribe issues the primary request and walks the fallback chain on
// failure or empty transcript. The returned error is non-nil only when
// the context is cancelled.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	language := req.Language
	if language == "" {
		language = p.cfg.DefaultLanguage
	}
	model := req.Model
	if model == "" {
		model = p.modelForLanguage(language)
	}
	model = cleanModelName(model)

	ctx, span := observability.StartSpan(ctx, "transcribe",
		trace.WithAttributes(
			attribute.String(observability.AttrModel, model),
			attribute.String(observability.AttrLanguage, language),
		))
	defer span.End()

	attempted := map[combo]bool{{model, language}: true}

	result := p.tryOnce(ctx, req.Audio, model, language, req.DetectLanguage)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result.Success && result.Transcript != "" {
		span.SetAttributes(attribute.Bool(observability.AttrFallbackUsed, false))
		return result, nil
	}

	fallbacks := []combo{
		{cleanModelName(p.cfg.FrenchModel), "fr-CA"},
		{cleanModelName(p.cfg.EnglishModel), "en-US"},
		{cleanModelName(p.cfg.DefaultModel), p.cfg.DefaultLanguage},
	}
	for _, fb := range fallbacks {
		if attempted[fb] {
			continue
		}
		attempted[fb] = true

		p.log.Info("transcription fallback attempt", logger.Fields(
			logger.FieldModel, fb.model,
			logger.FieldLanguage, fb.language,
		))
		fbResult := p.tryOnce(ctx, req.Audio, fb.model, fb.language, false)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fbResult.FallbackAttempted = true
		if fbResult.Success && fbResult.Transcript != "" {
			span.SetAttributes(attribute.Bool(observability.AttrFallbackUsed, true))
			return fbResult, nil
		}
	}

	// Every combination failed or came back empty; report the primary
	// attempt's outcome.
	result.FallbackAttempted = len(attempted) > 1
	span.SetAttributes(attribute.Bool(observability.AttrFallbackUsed, result.FallbackAttempted))
	return result, nil
}

// tryOnce performs one transcription attempt, retrying transient transport
// failures, and absorbs every failure into an error Result.
func (p *Provider) tryOnce(ctx context.Context, audio []byte, model, language string, detectLanguage bool) *transcription.Result {
	ctx, span := observability.StartSpan(ctx, "deepgram.transcribe",
		trace.WithAttributes(
			attribute.String(observability.AttrModel, model),
			attribute.String(observability.AttrLanguage, language),
		))
	defer span.End()

	result, err := resilience.Retry(ctx, p.retry, func() (*transcription.Result, error) {
		return p.doRequest(ctx, audio, model, language, detectLanguage)
	})
	if err != nil {
		span.SetAttributes(
			attribute.String(observability.AttrStatus, "error"),
			attribute.String(observability.AttrErrorMessage, err.Error()),
		)
		return p.errorResult(err)
	}
	status := "failed"
	if result.Success {
		status = "success"
	}
	span.SetAttributes(
		attribute.String(observability.AttrStatus, status),
		attribute.Int(observability.AttrTranscriptLen, len(result.Transcript)),
	)
	return result
}

func (p *Provider) doRequest(ctx context.Context, audio []byte, model, language string, detectLanguage bool) (*transcription.Result, error) {
	params := url.Values{}
	params.Set("model", model)
	params.Set("smart_format", "true")
	params.Set("punctuate", "true")
	params.Set("utterances", "true")
	params.Set("diarize", "true")
	if detectLanguage {
		params.Set("detect_language", "true")
	} else {
		params.Set("detect_language", "false")
		params.Set("language", language)
	}

	endpoint := p.cfg.URL + "/v1/listen?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return nil, errors.Internal(err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	p.setAuth(req)

	resp, err := p.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, errors.ProviderTimeout().WithCause(err)
		}
		return nil, errors.ProviderUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.New(
			errors.ErrCodeProviderResponse,
			fmt.Sprintf("Deepgram error %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			http.StatusBadGateway,
		)
	}

	var raw listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.New(
			errors.ErrCodeProviderResponse,
			fmt.Sprintf("malformed Deepgram response: %v", err),
			http.StatusBadGateway,
		)
	}

	return raw.toResult(model, language), nil
}

func (p *Provider) setAuth(req *http.Request) {
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Token "+p.cfg.APIKey)
	}
}

// errorResult converts a transport or provider error into a failed Result.
func (p *Provider) errorResult(err error) *transcription.Result {
	msg := err.Error()
	if appErr, ok := errors.AsAppError(err); ok {
		msg = appErr.Message
		if appErr.Cause != nil {
			msg = fmt.Sprintf("%s (%v)", appErr.Message, appErr.Cause)
		}
	}
	return &transcription.Result{Success: false, Error: msg}
}

// modelForLanguage maps a language tag to the configured model.
func (p *Provider) modelForLanguage(language string) string {
	primary := strings.ToLower(strings.SplitN(language, "-", 2)[0])
	switch primary {
	case "fr":
		return p.cfg.FrenchModel
	case "en":
		return p.cfg.EnglishModel
	default:
		return p.cfg.DefaultModel
	}
}

// cleanModelName strips legacy language suffixes like "nova-2.en".
func cleanModelName(model string) string {
	if strings.HasSuffix(model, ".en") || strings.HasSuffix(model, ".fr") {
		return model[:len(model)-3]
	}
	return model
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var uerr *url.Error
	return stderrors.As(err, &uerr) && uerr.Timeout()
}
