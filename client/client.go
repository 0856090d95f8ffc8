// Package client implements the single outgoing-request pipeline shared by
// every resource service. It attaches the bearer token, short-circuits
// requests carrying an expired token, and intercepts 401 responses so that no
// caller ever handles token attachment or auth failure itself.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	interrors "github.com/jrsteele09/go-tenant-client/internal/errors"
	"github.com/jrsteele09/go-tenant-client/internal/logger"
	"github.com/jrsteele09/go-tenant-client/token"
)

// AuthInvalidHandler is invoked after the pipeline has cleared the token in
// response to an expired token or a 401. It performs the navigation side of
// the redirect; the pipeline itself only decides.
type AuthInvalidHandler func()

// Client is the shared request pipeline.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        token.Store
	validator     *token.Validator
	onAuthInvalid AuthInvalidHandler
	limiter       *rate.Limiter
	log           *logger.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAuthInvalidHandler registers the navigation hook run after the token
// has been cleared on auth failure.
func WithAuthInvalidHandler(h AuthInvalidHandler) Option {
	return func(c *Client) {
		c.onAuthInvalid = h
	}
}

// WithValidator replaces the token expiry validator (primarily for testing
// with a fixed clock).
func WithValidator(v *token.Validator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// WithRateLimit throttles outgoing requests to n per second. Zero or negative
// n leaves the pipeline unthrottled.
func WithRateLimit(n float64) Option {
	return func(c *Client) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithLogger attaches a diagnostic logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a Client rooted at baseURL, reading the bearer token from tokens.
func New(baseURL string, tokens token.Store, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		tokens:     tokens,
		validator:  token.NewValidator(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// SetAuthInvalidHandler wires the navigation hook after construction. The
// session controller registers itself here since controller and client
// reference each other.
func (c *Client) SetAuthInvalidHandler(h AuthInvalidHandler) {
	c.onAuthInvalid = h
}

func (c *Client) authInvalid() {
	// Order matters: clear first, then navigate.
	if err := c.tokens.Clear(); err != nil {
		c.log.Warn("failed to clear token", map[string]any{"error": err.Error()})
	}
	if c.onAuthInvalid != nil {
		c.onAuthInvalid()
	}
}

// Do issues one request through the pipeline. body, when non-nil, is JSON
// encoded; out, when non-nil, receives the decoded JSON response body.
func (c *Client) Do(ctx context.Context, method, path string, body any, out any) error {
	// Outbound interception: presence and expiry of the stored token.
	tok, present := c.tokens.Get()
	if present && c.validator.IsExpired(tok) {
		c.log.Debug("expired token, aborting request", map[string]any{"path": path})
		c.authInvalid()
		return interrors.Wrapf(interrors.ErrAuthInvalid, "token expired before %s %s", method, path)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return interrors.Wrapf(err, "encoding %s %s request", method, path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return interrors.Wrapf(err, "building %s %s request", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if present {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return interrors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	// Inbound interception: a 401 on an authenticated call means the session
	// is gone. A 401 on an unauthenticated call (a bad login attempt) is an
	// ordinary failure and passes through with its body intact. No retries,
	// no translation.
	if resp.StatusCode == http.StatusUnauthorized && present {
		c.log.Debug("unauthorized response", map[string]any{"path": path})
		c.authInvalid()
		return interrors.Wrapf(interrors.ErrAuthInvalid, "unauthorized %s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return interrors.Wrapf(err, "decoding %s %s response", method, path)
		}
	}
	return nil
}

// Get issues a GET request for path and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE request for path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Ping checks backend reachability via the unauthenticated health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.Get(ctx, "/health", nil)
}
