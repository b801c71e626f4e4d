// Package client issues authorized requests against the provider's resource
// API. It obtains bearer tokens from an auth.Manager, attaches them together
// with the configured user agent, and passes responses through without
// interpreting their bodies.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/TokenForge/tokenforge/pkg/auth"
)

// Request describes a resource API call. Path and query parameters are
// passed through to the API unmodified.
type Request struct {
	// Method is the HTTP method; empty means GET.
	Method string
	// Path is resolved relative to the client's base URL.
	Path string
	// Query is appended to the URL as-is.
	Query url.Values
	// Body is the request body, if any.
	Body io.Reader
	// Header holds extra headers. Authorization and User-Agent are always
	// set by the client and cannot be overridden.
	Header http.Header
}

// Client attaches bearer tokens to resource API requests.
type Client struct {
	base      *url.URL
	userAgent string
	tokens    *auth.Manager
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for resource API requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// New creates a client for the resource API at baseURL. The token manager
// supplies access tokens; userAgent is attached to every request.
func New(baseURL, userAgent string, tokens *auth.Manager, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token manager is required")
	}
	if userAgent == "" {
		return nil, fmt.Errorf("user_agent is required")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %s", baseURL)
	}

	c := &Client{
		base:      base,
		userAgent: userAgent,
		tokens:    tokens,
		http:      http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Do obtains a token and issues the request.
//
// A token acquisition failure is returned unchanged. A network failure of
// the request itself is reported as a *auth.TransportError; it does not
// invalidate the cached token. Any response the API produces is returned
// as-is, whatever its status.
func (c *Client) Do(ctx context.Context, r Request) (*http.Response, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	u := c.base.JoinPath(r.Path)
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	for key, values := range r.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &auth.TransportError{Err: err}
	}

	return resp, nil
}

// Get issues an authorized GET for path with the given query.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues an authorized POST for path with the given body.
func (c *Client) Post(ctx context.Context, path string, contentType string, body io.Reader) (*http.Response, error) {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Header: header})
}
