package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/aurascribe/audit"
	apperrors "github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/server"
	"github.com/skillsenselab/aurascribe/server/middleware"
	"github.com/skillsenselab/aurascribe/session"
	"github.com/skillsenselab/aurascribe/validation"
)

type createSessionRequest struct {
	Language       string            `json:"language"`
	Model          string            `json:"model"`
	Persona        string            `json:"persona"`
	PatientContext map[string]string `json:"patient_context"`
}

// CreateSession starts a new dictation session.
func (h *Handlers) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid JSON payload"))
		return
	}

	params := session.CreateParams{
		Language:       req.Language,
		SelectedModel:  req.Model,
		Persona:        req.Persona,
		PatientContext: req.PatientContext,
	}
	if p := middleware.PrincipalFrom(c); p != nil {
		params.UserID = p.UserID
	}

	sess, err := h.deps.Sessions.Create(c.Request.Context(), params)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.publishAudit(c, audit.Event{
		Action:    audit.ActionSessionCreated,
		UserID:    params.UserID,
		SessionID: sess.ID,
		Details:   map[string]string{"surface": "rest"},
	})
	server.RespondCreated(c, sess)
}

// GetSession returns one session by id.
func (h *Handlers) GetSession(c *gin.Context) {
	id := c.Param("id")
	if err := validation.New().RequiredUUID("id", id).Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	sess, err := h.deps.Sessions.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, sess)
}

// ListSessions returns recent sessions, newest first. The limit query
// parameter caps the result set (default 50).
func (h *Handlers) ListSessions(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			server.RespondWithError(c, apperrors.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}

	sessions, err := h.deps.Sessions.List(c.Request.Context(), limit)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{"sessions": sessions, "count": len(sessions)})
}

// DeleteSession removes a session record.
func (h *Handlers) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := validation.New().RequiredUUID("id", id).Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := h.deps.Sessions.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.publishAudit(c, audit.Event{
		Action:    audit.ActionSessionDeleted,
		SessionID: id,
	})
	server.RespondNoContent(c)
}

type appendTranscriptRequest struct {
	Text string `json:"text"`
}

// AppendTranscript appends recognized text to an active session.
func (h *Handlers) AppendTranscript(c *gin.Context) {
	id := c.Param("id")
	var req appendTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid JSON payload"))
		return
	}
	if err := validation.New().
		RequiredUUID("id", id).
		Required("text", req.Text).
		Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	sess, err := h.deps.Sessions.AppendTranscript(c.Request.Context(), id, req.Text)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, sess)
}

// StopSession finalizes a session and returns the accumulated
// transcript. Stopping an already stopped session is a no-op that
// returns the existing record.
func (h *Handlers) StopSession(c *gin.Context) {
	id := c.Param("id")
	if err := validation.New().RequiredUUID("id", id).Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	sess, err := h.deps.Sessions.SetStatus(c.Request.Context(), id, session.StatusStopped)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.publishAudit(c, audit.Event{
		Action:    audit.ActionSessionStopped,
		UserID:    sess.UserID,
		SessionID: sess.ID,
		Details:   map[string]string{"chunks": strconv.Itoa(sess.ChunkCount)},
	})
	server.RespondOK(c, gin.H{
		"session":    sess,
		"transcript": sess.Transcript,
		"word_count": sess.WordCount(),
	})
}

func (h *Handlers) publishAudit(c *gin.Context, ev audit.Event) {
	if h.deps.Audit == nil {
		return
	}
	if ev.UserID == "" {
		if p := middleware.PrincipalFrom(c); p != nil {
			ev.UserID = p.UserID
		}
	}
	if err := h.deps.Audit.Publish(c.Request.Context(), ev); err != nil {
		h.log.Warn("audit publish failed",
			logger.Fields(logger.FieldError, err.Error()))
	}
}
