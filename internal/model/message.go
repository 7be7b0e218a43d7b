// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Cogitto AI"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// RISK LEVEL TYPE
// =============================================================================

// RiskLevel is the categorical severity tag attached to assistant messages
// to flag medical caution.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ParseRiskLevel maps a backend risk string onto the fixed enumeration.
// Unrecognized or empty values map to RiskLow, never to an error.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	case RiskCritical:
		return RiskCritical
	default:
		return RiskLow
	}
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// Elevated reports whether the risk level warrants a visible warning badge.
func (r RiskLevel) Elevated() bool {
	return r == RiskMedium || r == RiskHigh || r == RiskCritical
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a chat session.
// Messages are immutable once created: build them through the constructors
// and never modify the fields afterwards.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Assistant metadata (optional)
	MentionedMedications []string  `json:"mentioned_medications,omitempty"`
	RiskLevel            RiskLevel `json:"risk_level,omitempty"`
	AIModel              string    `json:"ai_model,omitempty"`
	ConfidenceScore      float64   `json:"confidence_score,omitempty"`
}

// NewUserMessage creates a user message stamped with the current time.
func NewUserMessage(content string) Message {
	return Message{
		ID:        "user_" + uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewSystemMessage creates a system message stamped with the current time.
func NewSystemMessage(content string) Message {
	return Message{
		ID:        "system_" + uuid.NewString(),
		Role:      RoleSystem,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// AssistantMessage describes the fields of an assistant reply. Used by
// constructors so callers cannot half-build a Message.
type AssistantMessage struct {
	ID                   string
	Content              string
	Timestamp            time.Time
	MentionedMedications []string
	RiskLevel            RiskLevel
	AIModel              string
	ConfidenceScore      float64
}

// NewAssistantMessage creates an assistant message from backend (or
// fallback) fields. A missing ID or timestamp is filled in locally.
func NewAssistantMessage(am AssistantMessage) Message {
	if am.ID == "" {
		am.ID = "assistant_" + uuid.NewString()
	}
	if am.Timestamp.IsZero() {
		am.Timestamp = time.Now()
	}
	if am.RiskLevel == "" {
		am.RiskLevel = RiskLow
	}
	return Message{
		ID:                   am.ID,
		Role:                 RoleAssistant,
		Content:              am.Content,
		Timestamp:            am.Timestamp,
		MentionedMedications: am.MentionedMedications,
		RiskLevel:            am.RiskLevel,
		AIModel:              am.AIModel,
		ConfidenceScore:      am.ConfidenceScore,
	}
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	content := strings.ReplaceAll(m.Content, "\n", " ")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m Message) IsEmpty() bool {
	return len(m.Content) == 0
}
