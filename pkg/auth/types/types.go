// Package types defines the token value type shared across the auth package.
package types

import (
	"strings"
	"time"
)

// FreshnessMargin is subtracted from a token's expiry when deciding whether
// it can still back a dependent request. A token inside the margin is treated
// as stale so it cannot expire mid-flight.
const FreshnessMargin = 60 * time.Second

// Token represents a bearer token issued by the token endpoint.
type Token struct {
	// AccessToken is the opaque bearer string.
	AccessToken string `json:"access_token"`
	// TokenType is the type of token (typically "bearer").
	TokenType string `json:"token_type,omitempty"`
	// Scope is the space-delimited granted scopes string.
	Scope string `json:"scope,omitempty"`
	// RefreshToken, when present, supersedes the configured refresh token
	// for subsequent refreshes.
	RefreshToken string `json:"refresh_token,omitempty"`
	// IssuedAt is when the token was obtained.
	IssuedAt time.Time `json:"issued_at,omitempty"`
	// ExpiresAt is IssuedAt plus the endpoint's expires_in.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Fresh reports whether the token is still usable at the given instant,
// honoring the freshness margin.
func (t *Token) Fresh(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(t.ExpiresAt.Add(-FreshnessMargin))
}

// Scopes splits the space-delimited scope string into individual scopes.
func (t *Token) Scopes() []string {
	return strings.Fields(t.Scope)
}
