package audit

import (
	"fmt"
	"time"
)

// Config holds audit publisher configuration.
type Config struct {
	// Enabled controls whether events are published at all.
	Enabled bool `mapstructure:"enabled"`

	// Brokers lists the Kafka bootstrap brokers.
	Brokers []string `mapstructure:"brokers"`

	// Topic is the audit event topic.
	Topic string `mapstructure:"topic"`

	// BatchTimeout bounds how long events may sit in a batch (e.g. "1s").
	BatchTimeout string `mapstructure:"batch_timeout"`

	// WriteTimeout bounds a single publish (e.g. "5s").
	WriteTimeout string `mapstructure:"write_timeout"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Topic == "" {
		c.Topic = "aurascribe.audit"
	}
	if c.BatchTimeout == "" {
		c.BatchTimeout = "1s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "5s"
	}
}

// Validate checks broker presence and duration formats when enabled.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return fmt.Errorf("audit enabled but no kafka brokers configured")
	}
	for name, v := range map[string]string{
		"batch_timeout": c.BatchTimeout,
		"write_timeout": c.WriteTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid audit %s %q: %w", name, v, err)
		}
	}
	return nil
}

func parseDuration(v string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
