package auth

import (
	"fmt"
	"time"
)

// Config holds authentication configuration.
type Config struct {
	// Enabled controls whether authentication is enforced. When false
	// every caller is admitted as an anonymous principal.
	Enabled bool `mapstructure:"enabled"`

	// APIKeyHashes are bcrypt hashes of the accepted API keys.
	APIKeyHashes []string `mapstructure:"api_key_hashes"`

	// JWTSecret is the HS256 signing key for bearer tokens.
	JWTSecret string `mapstructure:"jwt_secret"`

	// Issuer is the "iss" claim stamped on generated tokens.
	Issuer string `mapstructure:"issuer"`

	// TokenTTL is the lifetime of generated tokens (e.g. "12h").
	TokenTTL string `mapstructure:"token_ttl"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Issuer == "" {
		c.Issuer = "aurascribe"
	}
	if c.TokenTTL == "" {
		c.TokenTTL = "12h"
	}
}

// Validate checks that enabled auth has at least one usable credential
// source and a parseable token TTL.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.APIKeyHashes) == 0 && c.JWTSecret == "" {
		return fmt.Errorf("auth enabled but no api key hashes or jwt secret configured")
	}
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return fmt.Errorf("invalid token ttl %q: %w", c.TokenTTL, err)
	}
	if d <= 0 {
		return fmt.Errorf("token ttl must be positive (got %s)", c.TokenTTL)
	}
	return nil
}

func (c *Config) tokenTTL() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}
