package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/socialfeed/auth/authctx"
)

// Claims is the identity asserted by an access token.
// The subject is the numeric user id; the token id (jti) only makes each
// token unique and is not tracked.
type Claims struct {
	gojwt.RegisteredClaims
	Username string `json:"username"`
}

// Identity is the authenticated caller as seen by use-case handlers.
type Identity struct {
	UserID   int64
	Username string
}

// NewClaims builds claims for a user with a fresh token id.
func NewClaims(userID int64, username, tokenID string) *Claims {
	return &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject: strconv.FormatInt(userID, 10),
			ID:      tokenID,
		},
		Username: username,
	}
}

// SetDefaults fills the time, issuer and audience claims before signing.
func (c *Claims) SetDefaults(now time.Time, ttl time.Duration, issuer, audience string) {
	c.IssuedAt = gojwt.NewNumericDate(now)
	c.NotBefore = gojwt.NewNumericDate(now)
	c.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	c.Issuer = issuer
	c.Audience = gojwt.ClaimStrings{audience}
}

// Validate is called by the JWT parser after the standard checks pass.
func (c *Claims) Validate() error {
	if _, err := c.UserID(); err != nil {
		return err
	}
	if c.Username == "" {
		return errors.New("username claim is required")
	}
	if c.ID == "" {
		return errors.New("jti claim is required")
	}
	return nil
}

// UserID parses the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("sub claim must be a positive user id")
	}
	return id, nil
}

// Identity returns the caller described by the claims.
func (c *Claims) Identity() Identity {
	id, _ := c.UserID()
	return Identity{UserID: id, Username: c.Username}
}

// IdentityFromContext returns the caller stored by authentication middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	claims, ok := authctx.Get[*Claims](ctx)
	if !ok || claims == nil {
		return Identity{}, false
	}
	return claims.Identity(), true
}
