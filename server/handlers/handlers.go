package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/aurascribe/agent"
	"github.com/skillsenselab/aurascribe/audit"
	"github.com/skillsenselab/aurascribe/auth"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/orchestrator"
	"github.com/skillsenselab/aurascribe/session"
	"github.com/skillsenselab/aurascribe/transcription"
	"github.com/skillsenselab/aurascribe/transcription/deepgram"
)

// Deps holds the wired components the handlers operate on. Optional
// fields may be nil; the corresponding endpoints then report the
// capability as unavailable instead of failing at startup.
type Deps struct {
	Log          *logger.Logger
	Sessions     *session.Store
	Provider     transcription.Provider
	Deepgram     *deepgram.Provider
	Agents       *agent.Registry
	Orchestrator *orchestrator.Orchestrator
	Auth         *auth.Service
	Users        *auth.UserStore
	Audit        audit.Publisher
	Trail        *audit.Ring

	ServiceName string
	Version     string
}

// Handlers is the REST handler set for the service.
type Handlers struct {
	deps    Deps
	log     *logger.Logger
	started time.Time
}

// New creates the handler set.
func New(deps Deps) *Handlers {
	return &Handlers{
		deps:    deps,
		log:     deps.Log.WithComponent("handlers"),
		started: time.Now(),
	}
}

// Register mounts all routes on the given router. Authentication
// middleware is attached by the caller; the skip list below names the
// routes that must stay reachable without credentials.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/info", h.Info)

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.RegisterUser)
		api.POST("/auth/login", h.Login)

		api.GET("/personas", h.ListPersonas)
		api.GET("/personas/:key", h.GetPersona)

		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions", h.ListSessions)
		api.GET("/sessions/:id", h.GetSession)
		api.DELETE("/sessions/:id", h.DeleteSession)
		api.POST("/sessions/:id/transcript", h.AppendTranscript)
		api.POST("/sessions/:id/stop", h.StopSession)

		api.POST("/transcribe", h.Transcribe)
		api.POST("/orchestrate", h.Orchestrate)

		api.GET("/deepgram/status", h.DeepgramStatus)
		api.GET("/audit/recent", h.RecentAuditEvents)
	}
}

// PublicPaths lists route prefixes that skip authentication.
func PublicPaths() []string {
	return []string{"/health", "/info", "/api/auth/"}
}
