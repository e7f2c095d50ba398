package gateway

import (
	"fmt"
	"time"
)

// Config holds WebSocket gateway configuration.
type Config struct {
	// Path is the route the gateway mounts on.
	Path string `mapstructure:"path"`

	// MaxMessageSize caps a single inbound frame in bytes.
	MaxMessageSize int64 `mapstructure:"max_message_size"`

	// ReadTimeout is the pong deadline (e.g. "60s").
	ReadTimeout string `mapstructure:"read_timeout"`

	// WriteTimeout bounds a single outbound write (e.g. "10s").
	WriteTimeout string `mapstructure:"write_timeout"`

	// PingInterval is the keepalive ping cadence (e.g. "30s").
	PingInterval string `mapstructure:"ping_interval"`

	// ChunkTimeout bounds the transcription of one audio chunk (e.g. "45s").
	ChunkTimeout string `mapstructure:"chunk_timeout"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = "/ws/dictation"
	}
	if c.MaxMessageSize <= 0 {
		// Base64-encoded audio chunks run large.
		c.MaxMessageSize = 4 << 20
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "60s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "10s"
	}
	if c.PingInterval == "" {
		c.PingInterval = "30s"
	}
	if c.ChunkTimeout == "" {
		c.ChunkTimeout = "45s"
	}
}

// Validate checks duration formats and the ping/read relationship.
func (c *Config) Validate() error {
	durations := map[string]string{
		"read_timeout":  c.ReadTimeout,
		"write_timeout": c.WriteTimeout,
		"ping_interval": c.PingInterval,
		"chunk_timeout": c.ChunkTimeout,
	}
	for name, v := range durations {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid gateway %s %q: %w", name, v, err)
		}
		if d <= 0 {
			return fmt.Errorf("gateway %s must be positive (got %s)", name, v)
		}
	}
	if c.pingInterval() >= c.readTimeout() {
		return fmt.Errorf("gateway ping_interval (%s) must be shorter than read_timeout (%s)",
			c.PingInterval, c.ReadTimeout)
	}
	return nil
}

func (c *Config) readTimeout() time.Duration  { return mustDuration(c.ReadTimeout, 60*time.Second) }
func (c *Config) writeTimeout() time.Duration { return mustDuration(c.WriteTimeout, 10*time.Second) }
func (c *Config) pingInterval() time.Duration { return mustDuration(c.PingInterval, 30*time.Second) }
func (c *Config) chunkTimeout() time.Duration { return mustDuration(c.ChunkTimeout, 45*time.Second) }

func mustDuration(v string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
