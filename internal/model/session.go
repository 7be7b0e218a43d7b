// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session is one logical chat conversation scoped to a running client,
// identified by a locally generated session ID. The backend assigns a
// conversation ID on the first reply; once adopted it is never replaced.
type Session struct {
	// SessionID is generated locally when the session starts.
	SessionID string `json:"session_id"`

	// ConversationID is assigned by the backend on the first reply.
	// Empty until then. One-time latch: see AdoptConversationID.
	ConversationID string `json:"conversation_id,omitempty"`

	// CreatedAt is when the session started.
	CreatedAt time.Time `json:"created_at"`

	// Pending is true while a send is awaiting its reply.
	Pending bool `json:"-"`

	messages []Message
}

// NewSession creates a session with a freshly generated session ID and an
// empty message list.
func NewSession() *Session {
	return &Session{
		SessionID: generateSessionID(),
		CreatedAt: time.Now(),
	}
}

// generateSessionID creates a unique per-client session identifier:
// timestamp plus a random suffix, matching the backend's expected
// cogitto_session_* shape.
func generateSessionID() string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return "cogitto_session_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + hex.EncodeToString(suffix)
}

// =============================================================================
// MESSAGE HISTORY
// =============================================================================

// Append adds a message to the end of the history. Ordering is append-only
// and reflects chronological send/receive order.
func (s *Session) Append(msg Message) {
	s.messages = append(s.messages, msg)
}

// Messages returns a copy of the message history, oldest first.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	return len(s.messages)
}

// LastMessage returns the most recent message, or a zero Message and false
// when the history is empty.
func (s *Session) LastMessage() (Message, bool) {
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// UserMessageCount returns how many user messages the session holds.
func (s *Session) UserMessageCount() int {
	n := 0
	for _, m := range s.messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// =============================================================================
// CONVERSATION ID LATCH
// =============================================================================

// AdoptConversationID records the backend-assigned conversation ID.
// The ID is set at most once: a non-empty existing ID is never overwritten,
// and an empty candidate is ignored. Returns true if the ID was adopted.
func (s *Session) AdoptConversationID(id string) bool {
	if id == "" || s.ConversationID != "" {
		return false
	}
	s.ConversationID = id
	return true
}
