package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/observability"
	"github.com/skillsenselab/aurascribe/persona"
	"github.com/skillsenselab/aurascribe/server"
	"github.com/skillsenselab/aurascribe/version"
)

// healthProbeTimeout bounds the per-component checks so a hung backend
// cannot stall the probe.
const healthProbeTimeout = 3 * time.Second

// Health reports overall service health with per-component detail.
// Each wired component answers for itself through CheckHealth; Redis
// and transcription being down degrade rather than fail the service,
// since both have in-process or fallback behavior.
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	var checkers []observability.HealthChecker
	if h.deps.Sessions != nil {
		checkers = append(checkers, h.deps.Sessions)
	}
	if hc, ok := h.deps.Provider.(observability.HealthChecker); ok {
		checkers = append(checkers, hc)
	}
	if h.deps.Agents != nil {
		checkers = append(checkers, h.deps.Agents)
	}

	health := observability.Evaluate(ctx, h.deps.ServiceName, h.deps.Version, checkers...)
	c.JSON(health.HTTPStatus(), health)
}

// Info returns service identity and uptime.
func (h *Handlers) Info(c *gin.Context) {
	server.RespondOK(c, gin.H{
		"service":        h.deps.ServiceName,
		"version":        h.deps.Version,
		"build":          version.Get(),
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

// ListPersonas returns the full persona catalog.
func (h *Handlers) ListPersonas(c *gin.Context) {
	server.RespondOK(c, gin.H{"personas": persona.All()})
}

// GetPersona returns one persona by key.
func (h *Handlers) GetPersona(c *gin.Context) {
	key := c.Param("key")
	p, ok := persona.Get(key)
	if !ok {
		server.RespondWithError(c, apperrors.NotFound("persona", key))
		return
	}
	server.RespondOK(c, p)
}

// DeepgramStatus probes the speech backend and reports its models.
func (h *Handlers) DeepgramStatus(c *gin.Context) {
	if h.deps.Deepgram == nil {
		server.RespondWithError(c, apperrors.New(apperrors.ErrCodeProviderUnavailable,
			"transcription is not configured", http.StatusServiceUnavailable))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()
	server.RespondOK(c, h.deps.Deepgram.GetStatus(ctx))
}

// RecentAuditEvents returns the in-memory audit trail, oldest first.
func (h *Handlers) RecentAuditEvents(c *gin.Context) {
	if h.deps.Trail == nil {
		server.RespondOK(c, gin.H{"events": []any{}})
		return
	}
	events := h.deps.Trail.Recent()
	server.RespondOK(c, gin.H{"events": events, "count": len(events)})
}
