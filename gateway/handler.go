package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/aurascribe/audit"
	"github.com/skillsenselab/aurascribe/auth"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/observability"
	"github.com/skillsenselab/aurascribe/session"
	"github.com/skillsenselab/aurascribe/transcription"
)

// Handler upgrades HTTP requests to dictation WebSocket connections.
type Handler struct {
	cfg      Config
	upgrader websocket.Upgrader
	sessions *session.Store
	provider transcription.Provider
	auth     *auth.Service
	audit    audit.Publisher
	log      *logger.Logger
}

// NewHandler creates the gateway handler.
func NewHandler(cfg Config, sessions *session.Store, provider transcription.Provider, authSvc *auth.Service, auditPub audit.Publisher, log *logger.Logger) (*Handler, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{
		cfg:      cfg,
		sessions: sessions,
		provider: provider,
		auth:     authSvc,
		audit:    auditPub,
		log:      log.WithComponent("gateway"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

// ServeHTTP upgrades the connection and runs the event loop.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", logger.Fields(logger.FieldError, err.Error()))
		return
	}

	conn := &connection{
		handler: h,
		ws:      ws,
		send:    make(chan outboundEvent, 16),
		done:    make(chan struct{}),
	}
	go conn.writePump()
	conn.readLoop(r.Context())
}

// connection holds the per-connection state machine. All inbound events
// are handled sequentially on the read loop, which gives the strict
// in-order chunk processing the transcript accumulation depends on.
type connection struct {
	handler *Handler
	ws      *websocket.Conn
	send    chan outboundEvent
	done    chan struct{}

	principal  *auth.Principal
	sessionID  string
	recording  bool
	chunkIndex int
	// lastConfidence is the provider confidence of the most recent
	// transcribed chunk, reported again on recording_stopped.
	lastConfidence float64
}

func (c *connection) readLoop(ctx context.Context) {
	h := c.handler
	defer func() {
		close(c.done)
		c.ws.Close()
		c.cleanup(ctx)
	}()

	c.ws.SetReadLimit(h.cfg.MaxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(h.cfg.readTimeout()))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(h.cfg.readTimeout()))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read failed", logger.Fields(logger.FieldError, err.Error()))
			}
			return
		}

		var ev inboundEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			c.sendError("INVALID_MESSAGE", "invalid JSON message")
			continue
		}
		if !c.handleEvent(ctx, ev) {
			return
		}
	}
}

// handleEvent dispatches one inbound event. It returns false when the
// connection must close.
func (c *connection) handleEvent(ctx context.Context, ev inboundEvent) bool {
	switch ev.Type {
	case EventConnect:
		return c.handleConnect(ev)
	case EventStartRecording:
		c.handleStartRecording(ctx, ev)
	case EventAudioChunk:
		c.handleAudioChunk(ctx, ev)
	case EventStopRecording:
		c.handleStopRecording(ctx)
	case EventGetStatus:
		c.handleGetStatus(ctx)
	default:
		c.sendError("INVALID_MESSAGE", "unknown event type: "+ev.Type)
	}
	return true
}

// handleConnect authenticates the connection. Rejection closes the socket
// before any session state exists.
func (c *connection) handleConnect(ev inboundEvent) bool {
	if c.principal != nil {
		c.sendError("ALREADY_CONNECTED", "connection is already authenticated")
		return true
	}
	credential := ev.APIKey
	if ev.Token != "" {
		credential = "Bearer " + ev.Token
	}
	principal, err := c.handler.auth.Authenticate(credential)
	if err != nil {
		c.sendError("UNAUTHORIZED", "authentication failed")
		c.handler.audit.Publish(context.Background(), audit.Event{
			Action:  audit.ActionAuthRejected,
			Details: map[string]string{"surface": "gateway"},
		})
		return false
	}
	c.principal = principal
	c.sendEvent(outboundEvent{Type: EventConnected})
	return true
}

func (c *connection) handleStartRecording(ctx context.Context, ev inboundEvent) {
	if !c.requireAuth() {
		return
	}
	if c.recording {
		c.sendError("ALREADY_RECORDING", "a recording session is already active")
		return
	}

	sess, err := c.handler.sessions.Create(ctx, session.CreateParams{
		UserID:         c.principal.UserID,
		Language:       ev.Language,
		SelectedModel:  ev.Model,
		Persona:        ev.Persona,
		PatientContext: ev.PatientContext,
	})
	if err != nil {
		c.sendError("SESSION_CREATE_FAILED", "could not create session")
		return
	}
	c.sessionID = sess.ID
	c.recording = true
	c.chunkIndex = 0

	c.handler.audit.Publish(ctx, audit.Event{
		Action:    audit.ActionSessionCreated,
		UserID:    c.principal.UserID,
		SessionID: sess.ID,
	})
	c.handler.log.Info("recording started", logger.Fields(
		logger.FieldSessionID, sess.ID,
		logger.FieldLanguage, sess.Language,
		logger.FieldModel, sess.SelectedModel,
	))
	c.sendEvent(outboundEvent{
		Type:      EventRecordingStarted,
		SessionID: sess.ID,
		Language:  sess.Language,
		Model:     sess.SelectedModel,
	})
}

// handleAudioChunk transcribes one chunk in isolation and appends the
// recognized text. Transcription failures never break the stream; the
// client gets a chunk_received ack and keeps sending.
func (c *connection) handleAudioChunk(ctx context.Context, ev inboundEvent) {
	if !c.requireAuth() {
		return
	}
	if !c.recording {
		c.sendError("NOT_RECORDING", "no active recording session")
		return
	}
	c.chunkIndex++
	index := c.chunkIndex

	ctx, span := observability.StartSpan(ctx, "gateway.chunk",
		trace.WithAttributes(
			attribute.String(observability.AttrSessionID, c.sessionID),
			attribute.String(observability.AttrUserID, c.principal.UserID),
			attribute.Int(observability.AttrChunkIndex, index),
		))
	defer span.End()

	audioBytes, err := base64.StdEncoding.DecodeString(ev.Audio)
	if err != nil || len(audioBytes) == 0 {
		c.ackChunk(ctx, index, "invalid or empty audio payload")
		return
	}

	sess, err := c.handler.sessions.Get(ctx, c.sessionID)
	if err != nil {
		c.sendError("SESSION_NOT_FOUND", "recording session no longer exists")
		return
	}

	chunkCtx, cancel := context.WithTimeout(ctx, c.handler.cfg.chunkTimeout())
	defer cancel()
	result, err := c.handler.provider.Transcribe(chunkCtx, transcription.Request{
		Audio:    audioBytes,
		Language: sess.Language,
		Model:    sess.SelectedModel,
	})
	if err != nil || result == nil || !result.Success || result.Transcript == "" {
		detail := "no speech recognized"
		if result != nil && result.Error != "" {
			detail = result.Error
		}
		c.handler.log.Warn("chunk transcription failed", logger.Fields(
			logger.FieldSessionID, c.sessionID,
			logger.FieldChunk, index,
			"detail", detail,
		))
		c.ackChunk(ctx, index, detail)
		return
	}

	updated, err := c.handler.sessions.AppendTranscript(ctx, c.sessionID, result.Transcript)
	if err != nil {
		c.ackChunk(ctx, index, "transcript append failed")
		return
	}
	c.lastConfidence = result.Confidence
	c.sendEvent(outboundEvent{
		Type:            EventTranscriptUpdate,
		SessionID:       c.sessionID,
		Transcript:      updated.Transcript,
		ChunkIndex:      index,
		ChunkCount:      updated.ChunkCount,
		WordCount:       updated.WordCount(),
		Confidence:      result.Confidence,
		IsFinal:         ev.IsFinal,
		SpeakerSegments: result.SpeakerSegments,
		Transcribed:     true,
		Success:         true,
	})
}

// handleStopRecording finalizes the session and returns the accumulated
// transcript. The raw audio is never re-transcribed as one blob.
func (c *connection) handleStopRecording(ctx context.Context) {
	if !c.requireAuth() {
		return
	}
	if !c.recording {
		c.sendError("NOT_RECORDING", "no active recording session")
		return
	}
	sess, err := c.handler.sessions.SetStatus(ctx, c.sessionID, session.StatusStopped)
	if err != nil {
		c.sendError("SESSION_NOT_FOUND", "recording session no longer exists")
		c.recording = false
		return
	}
	c.recording = false

	c.handler.audit.Publish(ctx, audit.Event{
		Action:    audit.ActionSessionStopped,
		UserID:    c.principal.UserID,
		SessionID: sess.ID,
		Details:   map[string]string{"chunks": strconv.Itoa(sess.ChunkCount)},
	})
	c.sendEvent(outboundEvent{
		Type:        EventRecordingStopped,
		SessionID:   sess.ID,
		Transcript:  sess.Transcript,
		WordCount:   sess.WordCount(),
		ChunkCount:  sess.ChunkCount,
		Confidence:  c.lastConfidence,
		Success:     sess.Transcript != "",
		Transcribed: true,
	})
}

// handleGetStatus reports the connection's session state. An expired or
// deleted session reads as never-connected.
func (c *connection) handleGetStatus(ctx context.Context) {
	if !c.requireAuth() {
		return
	}
	out := outboundEvent{Type: EventStatus, Recording: c.recording}
	if c.sessionID != "" {
		if sess, err := c.handler.sessions.Get(ctx, c.sessionID); err == nil {
			out.SessionID = sess.ID
			out.Active = sess.IsActive()
			out.Language = sess.Language
			out.Model = sess.SelectedModel
			out.ChunkCount = sess.ChunkCount
			out.WordCount = sess.WordCount()
		}
	}
	c.sendEvent(out)
}

// cleanup drops transient connection state. Persisted session records
// survive; an interrupted recording is marked stopped so late appends
// cannot mutate it.
func (c *connection) cleanup(ctx context.Context) {
	if c.recording && c.sessionID != "" {
		if _, err := c.handler.sessions.SetStatus(ctx, c.sessionID, session.StatusStopped); err != nil {
			c.handler.log.Warn("could not stop session on disconnect", logger.Fields(
				logger.FieldSessionID, c.sessionID,
				logger.FieldError, err.Error(),
			))
		}
	}
}

func (c *connection) requireAuth() bool {
	if c.principal == nil {
		c.sendError("UNAUTHORIZED", "connect first")
		return false
	}
	return true
}

// ackChunk acknowledges a chunk that produced no transcript. The
// rejection is recorded in the audit trail; the stream stays open.
func (c *connection) ackChunk(ctx context.Context, index int, detail string) {
	c.handler.audit.Publish(ctx, audit.Event{
		Action:    audit.ActionChunkRejected,
		UserID:    c.principal.UserID,
		SessionID: c.sessionID,
		Details: map[string]string{
			"chunk":  strconv.Itoa(index),
			"reason": detail,
		},
	})
	c.sendEvent(outboundEvent{
		Type:        EventChunkReceived,
		SessionID:   c.sessionID,
		ChunkIndex:  index,
		Transcribed: false,
		Detail:      detail,
	})
}

func (c *connection) sendError(code, message string) {
	c.sendEvent(outboundEvent{Type: EventError, Code: code, Message: message})
}

func (c *connection) sendEvent(ev outboundEvent) {
	select {
	case c.send <- ev:
	case <-c.done:
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(c.handler.cfg.pingInterval())
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case ev := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(c.handler.cfg.writeTimeout()))
			if err := c.ws.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(c.handler.cfg.writeTimeout()))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			// Flush queued events before closing.
			for {
				select {
				case ev := <-c.send:
					c.ws.SetWriteDeadline(time.Now().Add(c.handler.cfg.writeTimeout()))
					if c.ws.WriteJSON(ev) != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}
