// Package auth implements the OAuth2 token lifecycle for clients of a
// REST API that issues bearer tokens from a dedicated token endpoint.
//
// The central type is Manager, which produces a currently valid access token
// on demand. Tokens are cached in memory for the lifetime of the process and
// refreshed lazily when a caller finds the cached one stale. Concurrent
// callers never trigger more than one refresh: they all attach to the same
// in-flight request and receive its result as one batch.
//
// # Grants
//
// Two OAuth2 grants are supported, selected by precedence rather than
// explicit mode switching:
//
//   - refresh_token: used whenever a refresh token is known, either from the
//     initial configuration or from a prior token response.
//   - password: used when no refresh token is known but a username and
//     password are configured.
//
// If neither path is satisfiable the manager fails with a
// *ConfigurationError before any network call.
//
// # Errors
//
// Failures are typed so callers can branch with errors.As:
// *ConfigurationError for an unusable credential set, *AuthError for a
// failed or malformed token-endpoint exchange, and *TransportError for
// network failures of resource API calls made with a valid token (reported
// by package client, not by the manager).
//
// The package never logs; rendering errors is the entry point's job.
package auth

// Credentials identifies the calling application and selects the grant used
// to obtain tokens. The zero value of an optional field disables the
// corresponding grant path.
type Credentials struct {
	// ClientID and ClientSecret identify the application. Both are sent to
	// the token endpoint as HTTP Basic credentials.
	ClientID     string
	ClientSecret string

	// Username and Password enable the resource owner password grant.
	Username string
	Password string

	// RefreshToken seeds the refresh_token grant. A refresh token returned
	// by the endpoint supersedes it for subsequent refreshes.
	RefreshToken string

	// UserAgent is attached to every request. The target API's usage policy
	// requires a descriptive one.
	UserAgent string

	// TokenURL is the provider's token endpoint.
	TokenURL string
}
