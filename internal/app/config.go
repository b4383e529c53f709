// Package app composes the socialfeed service: configuration, infrastructure
// components, the feed service and its HTTP routes.
package app

import (
	"github.com/kbukum/socialfeed/auth"
	"github.com/kbukum/socialfeed/config"
	"github.com/kbukum/socialfeed/database"
	"github.com/kbukum/socialfeed/observability"
	"github.com/kbukum/socialfeed/server"
	"github.com/kbukum/socialfeed/version"
)

// ServiceName names the binary, its config directory and its telemetry.
const ServiceName = "socialfeed"

// Config is the complete service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`

	// DisableSeed skips installing the demo dataset into an empty database.
	DisableSeed bool `yaml:"disable_seed" mapstructure:"disable_seed"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	return nil
}

// Load reads config.yml, .env and environment overrides into a Config.
func Load(opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := config.LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
