package deepgram

import (
	"fmt"
	"time"
)

// Config holds configuration for the Deepgram transcription provider.
type Config struct {
	// URL is the base URL of the self-hosted Deepgram instance.
	URL string `mapstructure:"url"`

	// APIKey is sent as "Authorization: Token <key>". Optional for
	// unauthenticated self-hosted instances.
	APIKey string `mapstructure:"api_key"`

	// EnglishModel, FrenchModel and DefaultModel map languages to the
	// model names exposed by the instance.
	EnglishModel string `mapstructure:"en_model"`
	FrenchModel  string `mapstructure:"fr_model"`
	DefaultModel string `mapstructure:"default_model"`

	// DefaultLanguage is used when the caller supplies none (e.g. "fr-CA").
	DefaultLanguage string `mapstructure:"default_language"`

	// Timeout bounds a single transcription request (e.g. "60s").
	Timeout string `mapstructure:"timeout"`

	// RetryAttempts is the number of attempts per (model, language)
	// combination for transient transport failures.
	RetryAttempts int `mapstructure:"retry_attempts"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:8080"
	}
	if c.EnglishModel == "" {
		c.EnglishModel = "nova-3"
	}
	if c.FrenchModel == "" {
		c.FrenchModel = "nova-3"
	}
	if c.DefaultModel == "" {
		c.DefaultModel = "nova-3"
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "fr-CA"
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 2
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("deepgram url is required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid deepgram timeout %q: %w", c.Timeout, err)
	}
	return nil
}

func (c *Config) timeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}
