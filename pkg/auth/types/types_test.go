package types

import (
	"testing"
	"time"
)

func TestTokenFresh(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token *Token
		want  bool
	}{
		{
			name:  "nil token",
			token: nil,
			want:  false,
		},
		{
			name:  "empty access token",
			token: &Token{ExpiresAt: now.Add(time.Hour)},
			want:  false,
		},
		{
			name:  "well before expiry",
			token: &Token{AccessToken: "AT", ExpiresAt: now.Add(time.Hour)},
			want:  true,
		},
		{
			name:  "just outside the margin",
			token: &Token{AccessToken: "AT", ExpiresAt: now.Add(FreshnessMargin + time.Second)},
			want:  true,
		},
		{
			name:  "exactly at the margin",
			token: &Token{AccessToken: "AT", ExpiresAt: now.Add(FreshnessMargin)},
			want:  false,
		},
		{
			name:  "inside the margin",
			token: &Token{AccessToken: "AT", ExpiresAt: now.Add(30 * time.Second)},
			want:  false,
		},
		{
			name:  "already expired",
			token: &Token{AccessToken: "AT", ExpiresAt: now.Add(-time.Minute)},
			want:  false,
		},
		{
			name:  "no expiry recorded",
			token: &Token{AccessToken: "AT"},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.Fresh(now); got != tt.want {
				t.Errorf("Fresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenScopes(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		want  int
	}{
		{"empty", "", 0},
		{"single", "read", 1},
		{"multiple", "read write identity", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := &Token{Scope: tt.scope}
			if got := len(token.Scopes()); got != tt.want {
				t.Errorf("len(Scopes()) = %d, want %d", got, tt.want)
			}
		})
	}
}
