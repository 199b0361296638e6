// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Configuration constants for the clinic API client.
const (
	// DefaultBaseURL is the development backend address.
	DefaultBaseURL = "http://localhost:8000/api"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of attempts for transient errors.
	DefaultMaxRetries = 3

	// MaxResponseSize caps response bodies to prevent memory exhaustion.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB
)

// Error variables for common API failures.
var (
	// ErrInvalidCredentials indicates the login endpoint rejected the
	// username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized indicates the bearer credential was rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")
)

// APIError carries the status and server-provided detail of a failed call.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error (HTTP %d)", e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match authorization failures.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// errorPayload is the DRF-style error body: {"detail": "..."}.
type errorPayload struct {
	Detail string `json:"detail"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the clinic backend. It owns the bearer credential and the
// global unauthorized observer. Safe for use from bubbletea commands; all
// mutable state is mutex-guarded.
type Client struct {
	mu         sync.Mutex
	baseURL    string
	httpClient *http.Client
	token      string

	// onUnauthorized is the registered expiry observer. armed gates it to
	// at most one invocation per arm cycle so a burst of failing requests
	// triggers a single global logout.
	onUnauthorized func()
	armed          bool
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// SetToken installs the bearer credential used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the bearer credential.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// HasToken reports whether a bearer credential is installed.
func (c *Client) HasToken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != ""
}

// =============================================================================
// UNAUTHORIZED OBSERVER
// =============================================================================

// SetUnauthorizedHandler registers the observer invoked when a response
// carries an authorization-failure status. Registration replaces any
// previous handler and leaves it disarmed: a rejected credential exchange
// or a failed silent restore is an ordinary call failure, not an expiry.
// Rearm enables the observer once a credential has been validated.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
	c.armed = false
}

// Rearm enables the unauthorized observer after a credential has been
// validated (login or restore).
func (c *Client) Rearm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = c.onUnauthorized != nil
}

// Disarm disables the observer without removing it, used on deliberate
// logout so late responses from in-flight requests stay silent.
func (c *Client) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = false
}

// fireUnauthorized invokes the observer at most once per arm cycle.
// The callback runs outside the lock.
func (c *Client) fireUnauthorized() {
	c.mu.Lock()
	fn := c.onUnauthorized
	fire := c.armed && fn != nil
	c.armed = false
	c.mu.Unlock()

	if fire {
		fn()
	}
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do executes one request with retry for transient failures. 5xx responses
// and transport errors back off and retry; anything else returns
// immediately. The unauthorized observer runs before the error is returned
// to the caller, preserving the interceptor-before-page-handler ordering.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < DefaultMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(1<<(attempt-1)) * 500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		c.setHeaders(req, body != nil)

		log.Printf("api request: %s %s", method, path)
		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		data, readErr := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
		resp.Body.Close()
		log.Printf("api response: %d %s (%v)", resp.StatusCode, path, time.Since(start))

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		}
		if readErr != nil {
			return nil, readErr
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.fireUnauthorized()
		}
		if resp.StatusCode >= 400 {
			return nil, &APIError{Status: resp.StatusCode, Detail: extractDetail(data)}
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// setHeaders attaches the bearer credential, content type and a request ID
// for server-side log correlation. The token itself is never logged.
func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("User-Agent", "clinic-tui/"+Version)
}

// extractDetail pulls the user-facing message out of a DRF error body.
func extractDetail(data []byte) string {
	var p errorPayload
	if err := json.Unmarshal(data, &p); err == nil && p.Detail != "" {
		return p.Detail
	}
	return ""
}

// Version is the client version reported in the User-Agent header.
// Overridden at build time from main.
var Version = "0.1.0"
