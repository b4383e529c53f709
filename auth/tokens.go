package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/socialfeed/auth/jwt"
)

// Token is a freshly issued access token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens for users.
type TokenService struct {
	jwt *jwt.Service[*Claims]
}

// NewTokenService creates a TokenService. cfg is defaulted and validated;
// a missing or short secret fails here.
func NewTokenService(cfg jwt.Config, opts ...jwt.Option) (*TokenService, error) {
	svc, err := jwt.NewService(&cfg, func() *Claims { return &Claims{} }, opts...)
	if err != nil {
		return nil, err
	}
	return &TokenService{jwt: svc}, nil
}

// Issue signs a token asserting userID and username, valid for the configured TTL.
func (s *TokenService) Issue(userID int64, username string) (Token, error) {
	claims := NewClaims(userID, username, uuid.NewString())
	value, err := s.jwt.GenerateAccess(claims)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: value, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Validate checks signature, issuer, audience and expiry, then the identity
// claims. Failures wrap one of the jwt.Err* sentinels.
func (s *TokenService) Validate(token string) (*Claims, error) {
	return s.jwt.Parse(token)
}

// ValidateToken implements TokenValidator.
func (s *TokenService) ValidateToken(token string) (*Claims, error) {
	return s.Validate(token)
}

// Issue signs a token with explicit parameters.
func Issue(userID int64, username, secret, issuer, audience string, ttlMinutes int) (string, error) {
	svc, err := NewTokenService(jwt.Config{
		Secret:         secret,
		Issuer:         issuer,
		Audience:       audience,
		AccessTokenTTL: time.Duration(ttlMinutes) * time.Minute,
	})
	if err != nil {
		return "", err
	}
	tok, err := svc.Issue(userID, username)
	return tok.Value, err
}

// Validate verifies a token with explicit parameters and returns its claims.
func Validate(token, secret, issuer, audience string) (*Claims, error) {
	svc, err := NewTokenService(jwt.Config{Secret: secret, Issuer: issuer, Audience: audience})
	if err != nil {
		return nil, err
	}
	return svc.Validate(token)
}
