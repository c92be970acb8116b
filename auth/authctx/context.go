// Package authctx propagates the authenticated identity through request
// contexts.
//
// The gatekeeper middleware stores the validated token claims once per
// request; handlers retrieve them without re-parsing the bearer token.
//
// Usage:
//
//	// Store claims (in middleware, after validation)
//	ctx = authctx.Set(ctx, claims)
//
//	// Retrieve claims (in handlers)
//	claims, ok := authctx.Get(ctx)
//	claims := authctx.MustGet(ctx) // panics if missing
package authctx

import (
	"context"
	"errors"

	"github.com/iiTONELOC/web-app-auth-server/auth/jwt"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var claimsKey = contextKey{}

// ErrNoClaims is returned when no validated claims are present.
var ErrNoClaims = errors.New("authctx: no claims in context")

// Set stores validated token claims in the context.
func Set(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Get retrieves the validated claims, reporting whether any are present.
func Get(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// MustGet retrieves the validated claims and panics when they are missing.
// Use only behind middleware that guarantees authentication.
func MustGet(ctx context.Context) *jwt.Claims {
	claims, ok := Get(ctx)
	if !ok {
		panic("authctx: claims not found in context")
	}
	return claims
}

// GetOrError retrieves the validated claims, returning ErrNoClaims when the
// request was never authenticated.
func GetOrError(ctx context.Context) (*jwt.Claims, error) {
	claims, ok := Get(ctx)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}
