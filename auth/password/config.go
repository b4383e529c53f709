package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Config configures password hashing.
type Config struct {
	// Cost is the bcrypt cost parameter (default: 12, range: 4-31).
	Cost int `yaml:"cost" mapstructure:"cost"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Cost == 0 {
		c.Cost = DefaultCost
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Cost < bcrypt.MinCost || c.Cost > bcrypt.MaxCost {
		return fmt.Errorf("password.cost must be between %d and %d (got: %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Cost)
	}
	return nil
}

// NewHasher creates a Hasher from configuration.
func NewHasher(cfg Config) Hasher {
	cfg.ApplyDefaults()
	return NewBcryptHasher(WithCost(cfg.Cost))
}
