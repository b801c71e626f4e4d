package auth

import "fmt"

// ConfigurationError reports that no usable grant path exists: neither a
// refresh token nor a username/password pair is configured. It is surfaced
// before any network call and is not retryable.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "auth: " + e.Reason
}

// AuthError reports that the token endpoint returned a non-success status or
// an unparsable response, or that the token request itself failed at the
// transport level. All callers waiting on the shared in-flight refresh
// receive the same *AuthError.
type AuthError struct {
	// StatusCode is the HTTP status of the token response, or zero when the
	// request never produced one.
	StatusCode int
	// Body holds the endpoint's response body for non-success statuses.
	Body string
	// Err is the underlying cause, if any.
	Err error
}

func (e *AuthError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("auth: token request failed with status %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("auth: token request failed: %v", e.Err)
	case e.Body != "":
		return fmt.Sprintf("auth: token endpoint returned status %d: %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("auth: token endpoint returned status %d", e.StatusCode)
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TransportError reports a network-level failure of a resource API call made
// with a valid token. It is surfaced to the immediate caller only and does
// not invalidate the cached token.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("auth: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
