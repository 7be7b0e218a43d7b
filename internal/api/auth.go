// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Register creates a new account. Validation failures come back as
// ErrTypeValidation with the backend's detail message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token triple plus user snapshot.
// Bad credentials come back as ErrUnauthorized.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthTokens, error) {
	var tokens AuthTokens
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &tokens); err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" {
		return nil, ErrBadResponse
	}
	return &tokens, nil
}
