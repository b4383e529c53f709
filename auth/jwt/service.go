// Package jwt provides a generic HMAC JWT service using Go generics.
//
// The service is parameterized by a claims type T, which must implement
// jwt.Claims (typically by embedding jwt.RegisteredClaims):
//
//	svc, err := jwt.NewService(cfg, func() *Claims { return &Claims{} })
//	token, err := svc.GenerateAccess(&Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: "1"}})
//	claims, err := svc.Parse(token)
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Parse failures, reported in the order the checks are defined:
// structure, signature, issuer, audience, expiry, remaining claims.
var (
	ErrTokenMalformed   = errors.New("jwt: malformed token")
	ErrSignatureInvalid = errors.New("jwt: signature invalid")
	ErrIssuerInvalid    = errors.New("jwt: issuer mismatch")
	ErrAudienceInvalid  = errors.New("jwt: audience mismatch")
	ErrTokenExpired     = errors.New("jwt: token expired")
	ErrClaimsInvalid    = errors.New("jwt: claims invalid")
)

// ClaimsDefaulter is implemented by claims types that accept the standard
// time, issuer and audience fields before signing.
type ClaimsDefaulter interface {
	SetDefaults(now time.Time, ttl time.Duration, issuer, audience string)
}

// Option configures a Service.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Service provides JWT token generation and parsing for custom claims type T.
type Service[T gojwt.Claims] struct {
	cfg      Config
	newEmpty func() T
	now      func() time.Time
}

// NewService creates a new JWT service.
// The newEmpty function returns a zero-value instance of T for parsing.
func NewService[T gojwt.Claims](cfg *Config, newEmpty func() T, opts ...Option) (*Service[T], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Service[T]{cfg: *cfg, newEmpty: newEmpty, now: o.now}, nil
}

// TTL returns the configured access token lifetime.
func (s *Service[T]) TTL() time.Duration {
	return s.cfg.AccessTokenTTL
}

// Generate signs the given claims as they are.
func (s *Service[T]) Generate(claims T) (string, error) {
	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := token.SignedString(s.cfg.key())
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// GenerateAccess fills the standard claims (iat, nbf, exp, iss, aud) when T
// implements ClaimsDefaulter, then signs.
func (s *Service[T]) GenerateAccess(claims T) (string, error) {
	if d, ok := any(claims).(ClaimsDefaulter); ok {
		d.SetDefaults(s.now(), s.cfg.AccessTokenTTL, s.cfg.Issuer, s.cfg.Audience)
	}
	return s.Generate(claims)
}

// Parse verifies and decodes a token string into claims of type T.
// The signature, issuer, audience and expiry must all be present and valid.
func (s *Service[T]) Parse(tokenString string) (T, error) {
	var zero T
	claims := s.newEmpty()
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return zero, classify(err)
	}
	if !token.Valid {
		return zero, ErrSignatureInvalid
	}
	parsed, ok := token.Claims.(T)
	if !ok {
		return zero, fmt.Errorf("%w: unexpected claims type %T", ErrClaimsInvalid, token.Claims)
	}
	return parsed, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service[T]) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != s.cfg.signingMethod().Alg() {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return s.cfg.key(), nil
}

// parserOptions returns jwt.ParserOption based on config.
func (s *Service[T]) parserOptions() []gojwt.ParserOption {
	return []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithIssuer(s.cfg.Issuer),
		gojwt.WithAudience(s.cfg.Audience),
		gojwt.WithExpirationRequired(),
		gojwt.WithLeeway(s.cfg.Leeway),
		gojwt.WithTimeFunc(s.now),
	}
}

// classify maps a golang-jwt error to the first failing check.
func classify(err error) error {
	var target error
	switch {
	case errors.Is(err, gojwt.ErrTokenMalformed):
		target = ErrTokenMalformed
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid), errors.Is(err, gojwt.ErrTokenUnverifiable):
		target = ErrSignatureInvalid
	case errors.Is(err, gojwt.ErrTokenInvalidIssuer):
		target = ErrIssuerInvalid
	case errors.Is(err, gojwt.ErrTokenInvalidAudience):
		target = ErrAudienceInvalid
	case errors.Is(err, gojwt.ErrTokenExpired):
		target = ErrTokenExpired
	default:
		target = ErrClaimsInvalid
	}
	return fmt.Errorf("%w: %w", target, err)
}
