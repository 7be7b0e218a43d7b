// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"
)

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// StartSession registers a new chat session with the backend.
func (c *Client) StartSession(ctx context.Context, currentMedications []string) (*ChatSession, error) {
	if currentMedications == nil {
		currentMedications = []string{}
	}
	req := StartSessionRequest{
		CurrentMedications: currentMedications,
		UserID:             nil,
	}

	var session ChatSession
	if err := c.do(ctx, http.MethodPost, "/chat/start-session", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SendMessage sends one user message and returns the full assistant reply.
// A 2xx body that lacks the assistant response is treated as a bad
// response so the caller can route it to the fallback path.
func (c *Client) SendMessage(ctx context.Context, req ChatMessageRequest) (*ChatMessageResponse, error) {
	var resp ChatMessageResponse
	if err := c.do(ctx, http.MethodPost, "/chat/message", req, &resp); err != nil {
		return nil, err
	}
	if resp.AssistantResponse.Content == "" {
		return nil, ErrBadResponse
	}
	return &resp, nil
}

// GetConversationHistory fetches the message history of a conversation.
func (c *Client) GetConversationHistory(ctx context.Context, conversationID string) (*ConversationHistory, error) {
	var history ConversationHistory
	path := "/chat/conversation/" + url.PathEscape(conversationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}
