package main

import (
	"fmt"

	"github.com/skillsenselab/aurascribe/audit"
	"github.com/skillsenselab/aurascribe/auth"
	"github.com/skillsenselab/aurascribe/config"
	"github.com/skillsenselab/aurascribe/gateway"
	"github.com/skillsenselab/aurascribe/observability"
	"github.com/skillsenselab/aurascribe/orchestrator"
	"github.com/skillsenselab/aurascribe/redis"
	"github.com/skillsenselab/aurascribe/server"
	"github.com/skillsenselab/aurascribe/session"
	"github.com/skillsenselab/aurascribe/transcription/deepgram"
	"github.com/skillsenselab/aurascribe/version"
)

// appConfig is the full service configuration, composed from the
// per-package sections.
type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Redis         redis.Config         `yaml:"redis" mapstructure:"redis"`
	Session       session.Config       `yaml:"session" mapstructure:"session"`
	Deepgram      deepgram.Config      `yaml:"deepgram" mapstructure:"deepgram"`
	Orchestrator  orchestrator.Config  `yaml:"orchestrator" mapstructure:"orchestrator"`
	Gateway       gateway.Config       `yaml:"gateway" mapstructure:"gateway"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Audit         audit.Config         `yaml:"audit" mapstructure:"audit"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`

	// AuditTrailSize is the capacity of the in-memory audit ring served
	// by the /api/audit/recent endpoint.
	AuditTrailSize int `yaml:"audit_trail_size" mapstructure:"audit_trail_size"`
}

func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "aurascribe"
	}
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Deepgram.ApplyDefaults()
	c.Orchestrator.ApplyDefaults()
	c.Gateway.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Audit.ApplyDefaults()
	c.Observability.ApplyDefaults()
	if c.AuditTrailSize <= 0 {
		c.AuditTrailSize = 256
	}
}

func (c *appConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	sections := map[string]interface{ Validate() error }{
		"server":       &c.Server,
		"redis":        &c.Redis,
		"session":      &c.Session,
		"deepgram":     &c.Deepgram,
		"orchestrator": &c.Orchestrator,
		"gateway":      &c.Gateway,
		"auth":         &c.Auth,
		"audit":        &c.Audit,
	}
	for name, section := range sections {
		if err := section.Validate(); err != nil {
			return fmt.Errorf("config.%s: %w", name, err)
		}
	}
	return nil
}
