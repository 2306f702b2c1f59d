package credentials

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssuedAt reads the iat claim of a JWT bearer token without verifying its
// signature. The client cannot verify it and only needs the timestamp to
// place the validity window. ok is false for opaque or malformed tokens.
func IssuedAt(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.IssuedAt == nil {
		return time.Time{}, false
	}
	return claims.IssuedAt.Time, true
}

// IssuedAtOr returns the token's iat, or fallback when the token carries none.
func IssuedAtOr(token string, fallback time.Time) time.Time {
	if t, ok := IssuedAt(token); ok {
		return t
	}
	return fallback
}
