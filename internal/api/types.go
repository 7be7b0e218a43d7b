// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// This file defines the wire types of the Cogitto backend API. Field names
// and JSON tags are the bit-exact contract; do not rename them without a
// backend change.

// =============================================================================
// AUTH WIRE TYPES
// =============================================================================

// User is the backend user profile snapshot.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthTokens is the 2xx response of POST /auth/login.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// apiError is the {detail} body the backend sends on 4xx.
type apiError struct {
	Detail string `json:"detail"`
}

// =============================================================================
// CHAT WIRE TYPES
// =============================================================================

// StartSessionRequest is the body of POST /chat/start-session.
type StartSessionRequest struct {
	CurrentMedications []string `json:"current_medications"`
	UserID             *string  `json:"user_id"`
}

// ChatSession is the 2xx response of POST /chat/start-session.
type ChatSession struct {
	SessionID          string   `json:"session_id"`
	Message            string   `json:"message"`
	CurrentMedications []string `json:"current_medications,omitempty"`
	Instructions       string   `json:"instructions,omitempty"`
}

// ChatMessageRequest is the body of POST /chat/message.
type ChatMessageRequest struct {
	Message        string `json:"message"`
	SessionID      string `json:"session_id"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// WireMessage is a message as the backend represents it.
type WireMessage struct {
	ID                   string   `json:"id"`
	Role                 string   `json:"role"`
	Content              string   `json:"content"`
	Timestamp            string   `json:"timestamp"`
	RiskLevel            string   `json:"risk_level,omitempty"`
	ConfidenceScore      float64  `json:"confidence_score,omitempty"`
	AIModel              string   `json:"ai_model,omitempty"`
	MentionedMedications []string `json:"mentioned_medications,omitempty"`
}

// AIProcessing describes how the backend produced the reply.
type AIProcessing struct {
	ModelUsed            string  `json:"model_used"`
	ConfidenceScore      float64 `json:"confidence_score"`
	ProcessingSuccessful bool    `json:"processing_successful"`
}

// CogittoInsights is the structured analysis attached to every reply.
type CogittoInsights struct {
	MentionedMedications  []string     `json:"mentioned_medications"`
	MedicationInsights    []string     `json:"medication_insights"`
	SafetyRecommendations []string     `json:"safety_recommendations"`
	InteractionWarnings   []string     `json:"interaction_warnings"`
	FollowupQuestions     []string     `json:"followup_questions"`
	AIProcessing          AIProcessing `json:"ai_processing"`
}

// SessionContext is the backend's running view of the session.
type SessionContext struct {
	TotalQueries       int      `json:"total_queries"`
	CurrentMedications []string `json:"current_medications"`
	OverallRiskLevel   string   `json:"overall_risk_level"`
}

// ChatMessageResponse is the 2xx response of POST /chat/message.
type ChatMessageResponse struct {
	ConversationID    string          `json:"conversation_id"`
	SessionID         string          `json:"session_id"`
	UserMessage       WireMessage     `json:"user_message"`
	AssistantResponse WireMessage     `json:"assistant_response"`
	CogittoInsights   CogittoInsights `json:"cogitto_insights"`
	Disclaimer        string          `json:"disclaimer"`
	SessionContext    SessionContext  `json:"session_context"`
}

// ConversationHistory is the passthrough shape of
// GET /chat/conversation/{id}.
type ConversationHistory struct {
	ConversationID string        `json:"conversation_id"`
	SessionID      string        `json:"session_id,omitempty"`
	Messages       []WireMessage `json:"messages"`
}
