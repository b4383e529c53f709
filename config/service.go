package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kbukum/socialfeed/logger"
)

// Environments accepted in the environment setting.
var Environments = []string{"development", "test", "staging", "production"}

// ServiceConfig holds the settings every binary shares. Application configs
// embed it with mapstructure squash so its keys sit at the top level:
//
//	name: socialfeed
//	environment: production
//	logging:
//	  level: info
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig is promoted to embedding structs.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults assumes development. Development turns Debug on, and Debug
// lowers the default log level to debug; an explicit logging.level wins.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate reports every invalid field at once.
func (c *ServiceConfig) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("config.name is required"))
	}
	if !slices.Contains(Environments, c.Environment) {
		errs = append(errs, fmt.Errorf("config.environment must be one of %v (got: %s)", Environments, c.Environment))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("config.logging: %w", err))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether environment is production.
func (c *ServiceConfig) IsProduction() bool {
	return c.Environment == "production"
}
