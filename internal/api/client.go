// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Cogitto API client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeUnauthorized
	ErrTypeValidation
	ErrTypeBadResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable  = &ClientError{Type: ErrTypeConnection, Message: "Cogitto backend is unreachable"}
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrUnauthorized = &ClientError{Type: ErrTypeUnauthorized, Message: "invalid credentials"}
	ErrBadResponse  = &ClientError{Type: ErrTypeBadResponse, Message: "unexpected response from backend"}
)

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeUnauthorized
}

// IsValidation reports whether err is a backend validation rejection.
func IsValidation(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeValidation
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Cogitto API client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: https://api.cogitto.health)
	BaseURL string

	// Timeout bounds every request (default: 30s). A request that exceeds
	// it is treated as a failure and routed to the fallback path.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls (default: 4).
	// One chat exchange is a single request, so this only matters when
	// the user hammers suggestions or the dashboard refreshes history.
	RequestsPerSecond float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "https://api.cogitto.health",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 4,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// TokenSource supplies the bearer token attached to authenticated
// requests. An empty token means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Client handles communication with the Cogitto backend API.
//
// The Client is safe for concurrent use, including ApplyConfig calls
// while requests are in flight.
type Client struct {
	mu         sync.RWMutex
	config     *ClientConfig
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
}

// fillConfigDefaults fills zero fields with the default values.
func fillConfigDefaults(config *ClientConfig) {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.cogitto.health"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 4
	}
}

// NewClient creates a client with the given configuration and token
// source. A nil config uses defaults; a nil token source sends every
// request unauthenticated.
func NewClient(config *ClientConfig, tokens TokenSource) *Client {
	c := &Client{tokens: tokens}
	c.ApplyConfig(config)
	return c
}

// ApplyConfig swaps the connection settings at runtime. The config
// watcher calls this on a live reload; requests already in flight
// finish against the old settings, subsequent requests use the new
// base URL, timeout, and throttle.
func (c *Client) ApplyConfig(config *ClientConfig) {
	if config == nil {
		config = DefaultConfig()
	}
	fillConfigDefaults(config)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = config
	c.httpClient = &http.Client{Timeout: config.Timeout}
	c.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 2)
}

// snapshot returns the current connection settings as one consistent
// view, so a reload mid-request cannot mix old and new pieces.
func (c *Client) snapshot() (*ClientConfig, *http.Client, *rate.Limiter) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config, c.httpClient, c.limiter
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.BaseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs one JSON request/response round trip. A non-nil body is
// JSON-encoded; a non-nil out receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	config, httpClient, limiter := c.snapshot()

	if err := limiter.Wait(ctx); err != nil {
		return &ClientError{Type: ErrTypeTimeout, Message: "request throttled past deadline", Cause: err}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeUnknown, Message: "failed to encode request", Cause: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, config.BaseURL+path, reqBody)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromStatus(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeBadResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// errorFromStatus translates a non-2xx response into a typed error,
// surfacing the backend's {detail} message when present.
func (c *Client) errorFromStatus(resp *http.Response) error {
	var detail apiError
	_ = json.NewDecoder(resp.Body).Decode(&detail)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if detail.Detail != "" {
			return &ClientError{Type: ErrTypeUnauthorized, Message: detail.Detail}
		}
		return ErrUnauthorized

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		msg := detail.Detail
		if msg == "" {
			msg = "request rejected: " + resp.Status
		}
		return &ClientError{Type: ErrTypeValidation, Message: msg}

	default:
		return &ClientError{Type: ErrTypeConnection, Message: "backend error: " + resp.Status}
	}
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckReachable verifies that the backend answers at all. Used by the
// status command; chat traffic does not depend on it.
func (c *Client) CheckReachable(ctx context.Context) error {
	config, httpClient, _ := c.snapshot()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+"/health", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return &ClientError{Type: ErrTypeConnection, Message: "backend unhealthy: " + resp.Status}
	}
	return nil
}
