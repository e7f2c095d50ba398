package session

import (
	"fmt"
	"time"
)

// Config holds session store configuration.
type Config struct {
	// TTL is the time-to-live applied to every session write (e.g. "24h").
	TTL string `mapstructure:"ttl"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `mapstructure:"key_prefix"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.TTL == "" {
		c.TTL = "24h"
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "aurascribe:session"
	}
}

// Validate checks that the TTL is parseable and positive.
func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return fmt.Errorf("invalid session ttl %q: %w", c.TTL, err)
	}
	if d <= 0 {
		return fmt.Errorf("session ttl must be positive (got %s)", c.TTL)
	}
	return nil
}

// ttl returns the parsed TTL. Call after ApplyDefaults and Validate.
func (c *Config) ttl() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
