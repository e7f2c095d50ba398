package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/skillsenselab/aurascribe/logger"
)

// Well-known audit actions.
const (
	ActionSessionCreated   = "session.created"
	ActionSessionStopped   = "session.stopped"
	ActionSessionDeleted   = "session.deleted"
	ActionChunkRejected    = "chunk.rejected"
	ActionOrchestrationRun = "orchestration.run"
	ActionAuthRejected     = "auth.rejected"
)

// Event is one audit record.
type Event struct {
	Time      time.Time         `json:"time"`
	Action    string            `json:"action"`
	UserID    string            `json:"user_id,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// Publisher records audit events.
type Publisher interface {
	// Publish records one event. Implementations must not block the
	// request path on broker availability beyond the write timeout.
	Publish(ctx context.Context, ev Event) error

	// Close flushes and releases resources.
	Close() error
}

// NewPublisher returns a Kafka-backed publisher, or a no-op publisher
// when auditing is disabled.
func NewPublisher(cfg Config, log *logger.Logger) (Publisher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return NewNop(log), nil
	}
	return &kafkaPublisher{cfg: cfg, log: log.WithComponent("audit")}, nil
}

// kafkaPublisher writes events to Kafka. The writer is created lazily on
// first publish so the service can start while the broker is down.
type kafkaPublisher struct {
	cfg    Config
	log    *logger.Logger
	mu     sync.Mutex
	writer *kafkago.Writer
	closed bool
}

func (p *kafkaPublisher) ensureWriter() (*kafkago.Writer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, fmt.Errorf("audit publisher is closed")
	}
	if p.writer == nil {
		p.writer = &kafkago.Writer{
			Addr:         kafkago.TCP(p.cfg.Brokers...),
			Topic:        p.cfg.Topic,
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: parseDuration(p.cfg.BatchTimeout, time.Second),
			WriteTimeout: parseDuration(p.cfg.WriteTimeout, 5*time.Second),
			RequiredAcks: kafkago.RequireOne,
			ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
				p.log.Error("writer: "+msg, map[string]interface{}{
					"args": fmt.Sprintf("%v", args),
				})
			}),
		}
		p.log.Info("audit publisher initialized", logger.Fields(
			"brokers", p.cfg.Brokers,
			"topic", p.cfg.Topic,
		))
	}
	return p.writer, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}
	writer, err := p.ensureWriter()
	if err != nil {
		return err
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("audit: marshal event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(ev.SessionID),
		Value: value,
	}
	if err := writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("audit publish failed", logger.Fields(
			"action", ev.Action,
			logger.FieldSessionID, ev.SessionID,
			logger.FieldError, err.Error(),
		))
		return err
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Nop drops every event with a debug log.
type Nop struct {
	log *logger.Logger
}

// NewNop creates a no-op publisher.
func NewNop(log *logger.Logger) *Nop {
	return &Nop{log: log.WithComponent("audit")}
}

func (n *Nop) Publish(ctx context.Context, ev Event) error {
	n.log.Debug("audit disabled, event dropped", logger.Fields("action", ev.Action))
	return nil
}

func (n *Nop) Close() error { return nil }
