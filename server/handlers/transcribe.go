package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/aurascribe/audit"
	apperrors "github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/server"
	"github.com/skillsenselab/aurascribe/transcription"
	"github.com/skillsenselab/aurascribe/validation"
)

// maxUploadBytes caps batch audio uploads at 50 MiB.
const maxUploadBytes = 50 << 20

type transcribeResponse struct {
	Result        *transcription.Result `json:"result"`
	Orchestration any                   `json:"orchestration,omitempty"`
	DurationMS    int64                 `json:"duration_ms"`
}

// Transcribe accepts a multipart audio upload and returns the
// transcription result. Form fields: audio (file, required), language,
// model, detect_language, persona, orchestrate. When orchestrate=true
// the transcript is also run through the agent pipeline for the given
// persona.
func (h *Handlers) Transcribe(c *gin.Context) {
	if h.deps.Provider == nil {
		server.RespondWithError(c, apperrors.New(apperrors.ErrCodeProviderUnavailable,
			"transcription is not configured", http.StatusServiceUnavailable))
		return
	}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		server.RespondWithError(c, apperrors.MissingField("audio"))
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		server.RespondWithError(c, apperrors.Validation("audio file exceeds the upload limit"))
		return
	}
	audio, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		server.RespondWithError(c, apperrors.Validation("could not read audio file"))
		return
	}
	if len(audio) == 0 {
		server.RespondWithError(c, apperrors.Validation("audio file is empty"))
		return
	}
	if len(audio) > maxUploadBytes {
		server.RespondWithError(c, apperrors.Validation("audio file exceeds the upload limit"))
		return
	}

	language := c.PostForm("language")
	if err := validation.New().LanguageTag("language", language).Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	req := transcription.Request{
		Audio:          audio,
		Language:       language,
		Model:          c.PostForm("model"),
		DetectLanguage: c.PostForm("detect_language") == "true",
	}

	start := time.Now()
	result, err := h.deps.Provider.Transcribe(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.log.Info("batch transcription finished", logger.Fields(
		logger.FieldModel, result.ModelUsed,
		logger.FieldStatus, result.Success,
		"bytes", len(audio),
		"filename", header.Filename,
	))

	resp := transcribeResponse{
		Result:     result,
		DurationMS: time.Since(start).Milliseconds(),
	}

	if c.PostForm("orchestrate") == "true" && result.Success && result.Transcript != "" {
		if h.deps.Orchestrator == nil {
			server.RespondWithError(c, apperrors.New(apperrors.ErrCodeAgentUnavailable,
				"orchestration is not configured", http.StatusServiceUnavailable))
			return
		}
		orch, err := h.deps.Orchestrator.Orchestrate(
			c.Request.Context(), result.Transcript, c.PostForm("persona"), nil)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		resp.Orchestration = orch
		resp.DurationMS = time.Since(start).Milliseconds()
	}

	server.RespondOK(c, resp)
}

type orchestrateRequest struct {
	Transcript     string            `json:"transcript"`
	Persona        string            `json:"persona"`
	PatientContext map[string]string `json:"patient_context"`
}

// Orchestrate runs the clinical agent pipeline over an existing
// transcript and returns the aggregated result.
func (h *Handlers) Orchestrate(c *gin.Context) {
	if h.deps.Orchestrator == nil {
		server.RespondWithError(c, apperrors.New(apperrors.ErrCodeAgentUnavailable,
			"orchestration is not configured", http.StatusServiceUnavailable))
		return
	}

	var req orchestrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid JSON payload"))
		return
	}
	if err := validation.New().Required("transcript", req.Transcript).Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	result, err := h.deps.Orchestrator.Orchestrate(
		c.Request.Context(), req.Transcript, req.Persona, req.PatientContext)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.publishAudit(c, audit.Event{
		Action: audit.ActionOrchestrationRun,
		Details: map[string]string{
			"persona":    req.Persona,
			"confidence": result.ConfidenceLevel,
		},
	})
	server.RespondOK(c, result)
}
