// Package authctx carries the authenticated caller's claims through a
// context.Context.
//
// Middleware stores whatever its validator returned; handlers read it back
// with the concrete type they expect:
//
//	ctx = authctx.Set(ctx, claims)
//	claims, ok := authctx.Get[*auth.Claims](ctx)
package authctx

import (
	"context"
	"errors"
)

// ErrNoClaims is returned when claims are not found in the context.
var ErrNoClaims = errors.New("authctx: no claims in context")

type claimsKey struct{}

// Set returns a copy of ctx carrying claims.
func Set(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// Get returns the claims stored in ctx when they have type T.
func Get[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(claimsKey{}).(T)
	return claims, ok
}

// GetOrError is Get with ErrNoClaims for the missing case.
func GetOrError[T any](ctx context.Context) (T, error) {
	claims, ok := Get[T](ctx)
	if !ok {
		return claims, ErrNoClaims
	}
	return claims, nil
}

// MustGet is Get for code paths behind authentication middleware.
// It panics when claims are missing.
func MustGet[T any](ctx context.Context) T {
	claims, err := GetOrError[T](ctx)
	if err != nil {
		panic(err)
	}
	return claims
}

type tokenKey struct{}

// SetToken returns a copy of ctx carrying the raw bearer token.
func SetToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// GetToken returns the raw bearer token stored by SetToken.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
