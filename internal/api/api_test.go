// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens is a TokenSource with a fixed token.
type staticTokens struct{ token string }

func (s staticTokens) AccessToken() string { return s.token }

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(&ClientConfig{BaseURL: srv.URL, RequestsPerSecond: 1000}, staticTokens{token})
	return client, srv
}

// =============================================================================
// TRANSPORT TESTS
// =============================================================================

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(ChatSession{SessionID: "s1", Message: "hi"})
	}), "tok123")

	_, err := client.StartSession(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(ChatSession{SessionID: "s1"})
	}), "")

	_, err := client.StartSession(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_MalformedBodyIsBadResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}), "")

	_, err := client.SendMessage(context.Background(), ChatMessageRequest{Message: "hi", SessionID: "s1"})
	require.Error(t, err)

	var ce *ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrTypeBadResponse, ce.Type)
}

func TestClient_ServerErrorIsConnection(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}), "")

	_, err := client.SendMessage(context.Background(), ChatMessageRequest{Message: "hi", SessionID: "s1"})
	require.Error(t, err)

	var ce *ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrTypeConnection, ce.Type)
}

func TestClient_ApplyConfigRetargetsNewRequests(t *testing.T) {
	var oldHits, newHits int
	oldSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		oldHits++
		json.NewEncoder(w).Encode(ChatSession{SessionID: "s1"})
	}))
	t.Cleanup(oldSrv.Close)
	newSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		newHits++
		json.NewEncoder(w).Encode(ChatSession{SessionID: "s1"})
	}))
	t.Cleanup(newSrv.Close)

	client := NewClient(&ClientConfig{BaseURL: oldSrv.URL, RequestsPerSecond: 1000}, nil)
	_, err := client.StartSession(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, oldHits)

	// A config reload while the program runs must reach the client.
	client.ApplyConfig(&ClientConfig{BaseURL: newSrv.URL, RequestsPerSecond: 1000})
	assert.Equal(t, newSrv.URL, client.BaseURL())

	_, err = client.StartSession(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, oldHits)
	assert.Equal(t, 1, newHits)
}

func TestClient_ApplyConfigFillsDefaults(t *testing.T) {
	client := NewClient(nil, nil)
	client.ApplyConfig(&ClientConfig{})
	assert.Equal(t, "https://api.cogitto.health", client.BaseURL())
}

// =============================================================================
// AUTH OPERATION TESTS
// =============================================================================

func TestLogin_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alex@example.com", req.Email)

		json.NewEncoder(w).Encode(AuthTokens{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "bearer",
			ExpiresIn:    3600,
			User:         User{ID: "u1", Email: req.Email, FullName: "Alex"},
		})
	}), "")

	tokens, err := client.Login(context.Background(), LoginRequest{Email: "alex@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "refresh", tokens.RefreshToken)
	assert.Equal(t, "u1", tokens.User.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}), "")

	_, err := client.Login(context.Background(), LoginRequest{Email: "alex@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Incorrect email or password")
}

func TestRegister_ValidationDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "email already registered"})
	}), "")

	_, err := client.Register(context.Background(), RegisterRequest{Email: "dup@example.com", Password: "password1", FullName: "Dup"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "email already registered")
}

// =============================================================================
// CHAT OPERATION TESTS
// =============================================================================

func TestSendMessage_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/message", r.URL.Path)

		var req ChatMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cogitto_session_1", req.SessionID)
		assert.Empty(t, req.ConversationID)

		json.NewEncoder(w).Encode(ChatMessageResponse{
			ConversationID: "conv_9",
			SessionID:      req.SessionID,
			AssistantResponse: WireMessage{
				ID:        "a1",
				Role:      "assistant",
				Content:   "Aspirin is an NSAID.",
				Timestamp: "2025-03-01T10:00:00Z",
				RiskLevel: "low",
				AIModel:   "cogitto-v2",
			},
			CogittoInsights: CogittoInsights{
				MentionedMedications: []string{"aspirin"},
			},
		})
	}), "tok")

	resp, err := client.SendMessage(context.Background(), ChatMessageRequest{
		Message:   "Tell me about aspirin",
		SessionID: "cogitto_session_1",
	})
	require.NoError(t, err)
	assert.Equal(t, "conv_9", resp.ConversationID)
	assert.Equal(t, "Aspirin is an NSAID.", resp.AssistantResponse.Content)
	assert.Equal(t, []string{"aspirin"}, resp.CogittoInsights.MentionedMedications)
}

func TestSendMessage_MissingAssistantIsBadResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatMessageResponse{ConversationID: "conv_1"})
	}), "tok")

	_, err := client.SendMessage(context.Background(), ChatMessageRequest{Message: "hi", SessionID: "s"})
	require.Error(t, err)

	var ce *ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrTypeBadResponse, ce.Type)
}

func TestGetConversationHistory_EscapesID(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(ConversationHistory{ConversationID: "conv 1"})
	}), "tok")

	_, err := client.GetConversationHistory(context.Background(), "conv 1")
	require.NoError(t, err)
	assert.Equal(t, "/chat/conversation/conv%201", gotPath)
}

func TestStartSession_SendsNullUserID(t *testing.T) {
	var rawBody map[string]json.RawMessage
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		json.NewEncoder(w).Encode(ChatSession{SessionID: "s1"})
	}), "tok")

	_, err := client.StartSession(context.Background(), []string{"aspirin"})
	require.NoError(t, err)
	assert.Equal(t, "null", string(rawBody["user_id"]))
	assert.Equal(t, `["aspirin"]`, string(rawBody["current_medications"]))
}
