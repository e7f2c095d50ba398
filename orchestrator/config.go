package orchestrator

import (
	"fmt"
	"time"
)

// Config holds orchestrator configuration.
type Config struct {
	// Workers is the size of the shared agent worker pool.
	Workers int `mapstructure:"workers"`

	// AgentTimeout bounds a single agent invocation (e.g. "30s").
	AgentTimeout string `mapstructure:"agent_timeout"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 6
	}
	if c.AgentTimeout == "" {
		c.AgentTimeout = "30s"
	}
}

// Validate checks that the agent timeout is parseable and positive.
func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.AgentTimeout)
	if err != nil {
		return fmt.Errorf("invalid agent timeout %q: %w", c.AgentTimeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("agent timeout must be positive (got %s)", c.AgentTimeout)
	}
	return nil
}

func (c *Config) agentTimeout() time.Duration {
	d, err := time.ParseDuration(c.AgentTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
