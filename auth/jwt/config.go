package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum HMAC key size in bytes (256 bits).
const MinSecretLength = 32

// SigningMethod defines supported JWT signing algorithms.
// Only symmetric HMAC methods are supported.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures the JWT token service.
type Config struct {
	// Secret is the HMAC key shared by issuer and validator.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method"`

	// Issuer is the "iss" claim written on issue and required on validation.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// Audience is the "aud" claim written on issue and required on validation.
	Audience string `yaml:"audience" mapstructure:"audience"`

	// AccessTokenTTL is the lifetime of issued tokens (default: 60m).
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`

	// Leeway tolerates clock skew when checking exp/nbf (default: 0).
	Leeway time.Duration `yaml:"leeway" mapstructure:"leeway"`
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 60 * time.Minute
	}
}

// Validate checks that the key, issuer and audience are usable.
// A short or missing secret is a configuration error, never a runtime one.
func (c *Config) Validate() error {
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return fmt.Errorf("jwt: unsupported signing method: %s", c.Method)
	}
	if c.Secret == "" {
		return errors.New("jwt: secret is required")
	}
	if len(c.Secret) < MinSecretLength {
		return fmt.Errorf("jwt: secret must be at least %d bytes (got %d)", MinSecretLength, len(c.Secret))
	}
	if c.Issuer == "" {
		return errors.New("jwt: issuer is required")
	}
	if c.Audience == "" {
		return errors.New("jwt: audience is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("jwt: access_token_ttl must be positive")
	}
	if c.Leeway < 0 {
		return errors.New("jwt: leeway must not be negative")
	}
	return nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

func (c *Config) key() []byte {
	return []byte(c.Secret)
}
