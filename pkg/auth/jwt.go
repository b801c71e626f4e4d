package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the subset of JWT claims useful when inspecting an
// operator-supplied token. Access tokens are treated as opaque by the
// manager; these helpers exist for diagnostics only.
type Claims struct {
	Subject   string
	Username  string
	Scope     string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ParseClaims parses a JWT without verifying its signature, for claim
// inspection only. It fails only on malformed tokens, not on expired or
// unsigned ones.
func ParseClaims(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to extract claims from token")
	}

	claims := &Claims{}

	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if username, ok := mapClaims["preferred_username"].(string); ok {
		claims.Username = username
	} else if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}
	if scope, ok := mapClaims["scope"].(string); ok {
		claims.Scope = scope
	}
	if iss, ok := mapClaims["iss"].(string); ok {
		claims.Issuer = iss
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims, nil
}

// IsJWT reports whether the string has the three-part compact JWT shape.
// Providers commonly issue opaque refresh tokens, which are not inspectable.
func IsJWT(tokenString string) bool {
	return len(strings.Split(tokenString, ".")) == 3
}
