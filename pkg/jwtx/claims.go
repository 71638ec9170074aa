// Package jwtx verifies the bearer tokens minted by the external identity
// provider. The service never issues end-user tokens itself; it only checks
// signature, issuer and lifetime, and surfaces the account identity to the
// HTTP layer.
package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims this service consumes. Subject is the
// account ID (caregiver or sitter), Email/Name mirror the identity provider's
// profile fields.
type Claims struct {
	jwt.RegisteredClaims

	// Permission scopes, e.g. "sessions:write sitters:write".
	Scopes []string `json:"scopes,omitempty"`

	// Email of the authenticated account, mirrored from the identity
	// provider's profile and surfaced to handlers via the request context.
	Email string `json:"email,omitempty"`

	// Name is the display name for the account.
	Name string `json:"name,omitempty"`
}

// NewClaims builds minimally-correct claims, mainly used by tests and the
// local development token mint.
func NewClaims(subject, email, name string, scopes []string, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scopes: scopes,
		Email:  email,
		Name:   name,
	}
}

// ValidateIssuer checks the issuer against the expected value. An empty
// expected issuer enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used before
// it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}

// HasScope reports whether the token carries the given scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}
