package auth

import (
	"fmt"

	"github.com/kbukum/socialfeed/auth/jwt"
	"github.com/kbukum/socialfeed/auth/password"
	"github.com/kbukum/socialfeed/util"
)

// Token claim defaults for the social feed API.
const (
	DefaultIssuer   = "SocialMediaApi"
	DefaultAudience = "SocialMediaUsers"
)

// Config holds all authentication configuration.
type Config struct {
	JWT      jwt.Config      `yaml:"jwt" mapstructure:"jwt"`
	Password password.Config `yaml:"password" mapstructure:"password"`
}

// ApplyDefaults sets defaults on every sub-configuration.
func (c *Config) ApplyDefaults() {
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = DefaultIssuer
	}
	if c.JWT.Audience == "" {
		c.JWT.Audience = DefaultAudience
	}
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.%w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.%w", err)
	}
	return nil
}

// Describe returns a human-readable one-liner for the startup summary.
// Example: "JWT(HS256) key=Your*** iss=SocialMediaApi aud=SocialMediaUsers TTL=1h0m0s bcrypt(12)"
func (c *Config) Describe() string {
	return fmt.Sprintf("JWT(%s) key=%s iss=%s aud=%s TTL=%s bcrypt(%d)",
		c.JWT.Method, util.MaskSecret(c.JWT.Secret, 4), c.JWT.Issuer, c.JWT.Audience,
		c.JWT.AccessTokenTTL, c.Password.Cost)
}
