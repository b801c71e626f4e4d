package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/TokenForge/tokenforge/pkg/auth/types"
)

// defaultTimeout bounds the token request when no custom HTTP client is
// provided. A stuck refresh blocks every caller attached to it, so the
// transport timeout is the only thing that unblocks them.
const defaultTimeout = 30 * time.Second

// Manager produces a currently valid bearer token on demand, requesting a
// new one from the token endpoint only when the cached one is stale. It is
// safe for concurrent use; overlapping callers share a single in-flight
// refresh.
type Manager struct {
	creds  Credentials
	client *http.Client

	mu sync.Mutex
	// token is the single cached token. A successful refresh replaces it
	// atomically; a failed refresh clears it so the next call retries.
	token *types.Token
	// refreshToken is the grant credential currently in effect. It starts as
	// the configured value and is superseded by refresh tokens returned from
	// the endpoint.
	refreshToken string
	// call is the shared in-flight refresh handle. Non-nil exactly while a
	// refresh is outstanding.
	call *refreshCall

	now func() time.Time
}

// refreshCall is the handle overlapping callers attach to. The fields are
// written before done is closed and read only after it is closed.
type refreshCall struct {
	done  chan struct{}
	token *types.Token
	err   error
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient sets the HTTP client used for token requests. Its timeout
// bounds how long a stuck refresh can block dependent callers.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		if client != nil {
			m.client = client
		}
	}
}

// NewManager creates a token manager for the given credentials.
//
// ClientID, ClientSecret, TokenURL, and UserAgent are required. A missing
// grant path (no refresh token and no username/password) is not a
// construction error; it surfaces as a *ConfigurationError on first use,
// without any network call.
func NewManager(creds Credentials, opts ...Option) (*Manager, error) {
	if creds.ClientID == "" {
		return nil, fmt.Errorf("client_id is required")
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("client_secret is required")
	}
	if creds.TokenURL == "" {
		return nil, fmt.Errorf("token_url is required")
	}
	if creds.UserAgent == "" {
		return nil, fmt.Errorf("user_agent is required")
	}

	m := &Manager{
		creds:        creds,
		refreshToken: creds.RefreshToken,
		client:       &http.Client{Timeout: defaultTimeout},
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// AccessToken returns a currently valid access token string, refreshing if
// necessary. See Token for the full contract.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	tok, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Token returns a currently valid token, refreshing if necessary.
//
// A cached token inside its freshness window is returned without any network
// call. Otherwise at most one refresh runs at a time: callers arriving while
// one is outstanding attach to it and all resolve together with its result.
// On failure the cache reverts to empty so the next call attempts a fresh
// refresh.
func (m *Manager) Token(ctx context.Context) (*types.Token, error) {
	m.mu.Lock()

	if m.token.Fresh(m.now()) {
		tok := *m.token
		m.mu.Unlock()
		return &tok, nil
	}

	if m.call != nil {
		call := m.call
		m.mu.Unlock()
		<-call.done
		if call.err != nil {
			return nil, call.err
		}
		tok := *call.token
		return &tok, nil
	}

	// The handle is registered before the first suspension point so no other
	// caller can observe "stale and no in-flight refresh" concurrently.
	call := &refreshCall{done: make(chan struct{})}
	m.call = call
	refreshToken := m.refreshToken
	m.mu.Unlock()

	tok, err := m.refresh(ctx, refreshToken)
	call.token, call.err = tok, err

	m.mu.Lock()
	if err != nil {
		m.token = nil
	} else {
		m.token = tok
		if tok.RefreshToken != "" {
			m.refreshToken = tok.RefreshToken
		}
	}
	m.call = nil
	m.mu.Unlock()

	close(call.done)

	if err != nil {
		return nil, err
	}
	out := *tok
	return &out, nil
}

// tokenResponse is the token endpoint's JSON success payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// refresh performs a single authenticated POST to the token endpoint. Grant
// precedence: a known refresh token wins over configured username/password;
// with neither, it fails before any network call. No retries.
func (m *Manager) refresh(ctx context.Context, refreshToken string) (*types.Token, error) {
	form := url.Values{}
	switch {
	case refreshToken != "":
		form.Set("grant_type", "refresh_token")
		form.Set("refresh_token", refreshToken)
	case m.creds.Username != "" && m.creds.Password != "":
		form.Set("grant_type", "password")
		form.Set("username", m.creds.Username)
		form.Set("password", m.creds.Password)
	default:
		return nil, &ConfigurationError{
			Reason: "insufficient credentials: a refresh token or username/password is required",
		}
	}

	// The outcome is shared by every caller attached to the in-flight
	// handle, so one caller's cancellation must not fail the batch. The
	// client timeout still bounds the request.
	ctx = context.WithoutCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.creds.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	req.SetBasicAuth(m.creds.ClientID, m.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", m.creds.UserAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &AuthError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode token response: %w", err)}
	}
	if payload.AccessToken == "" {
		return nil, &AuthError{StatusCode: resp.StatusCode, Err: fmt.Errorf("token response missing access_token")}
	}

	now := m.now()
	tok := &types.Token{
		AccessToken:  payload.AccessToken,
		TokenType:    payload.TokenType,
		Scope:        payload.Scope,
		RefreshToken: payload.RefreshToken,
		IssuedAt:     now,
		ExpiresAt:    now.Add(time.Duration(payload.ExpiresIn) * time.Second),
	}

	// Carry the previous refresh token forward when the response omits one,
	// so refresh-token flows stay usable indefinitely.
	if tok.RefreshToken == "" {
		tok.RefreshToken = refreshToken
	}

	return tok, nil
}

// TokenSource adapts the manager to golang.org/x/oauth2, so it can back
// oauth2.NewClient and other TokenSource consumers. The returned source uses
// ctx for the underlying token requests.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &managerSource{ctx: ctx, m: m}
}

type managerSource struct {
	ctx context.Context
	m   *Manager
}

func (s *managerSource) Token() (*oauth2.Token, error) {
	tok, err := s.m.Token(s.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.ExpiresAt,
	}, nil
}
