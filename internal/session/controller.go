// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cogitto/cogitto-tui/internal/api"
	"github.com/cogitto/cogitto-tui/internal/fallback"
	"github.com/cogitto/cogitto-tui/internal/model"
)

// offlineNote is appended to every fallback reply so the user knows the
// answer did not come from the live AI.
const offlineNote = "\n\n*Note: Currently in offline mode.*"

// welcomeContent greets the user when a conversation opens. Kept
// word-for-word in sync with the Cogitto web client.
const welcomeContent = `👋 **Welcome to Cogitto AI!**

I'm your intelligent medication assistant powered by real FDA data and advanced AI. I can help you with:

- **Drug interactions** - "Can I take ibuprofen with warfarin?"
- **Medication information** - "Tell me about aspirin"
- **Side effects** - "What are the side effects of lisinopril?"
- **Safety guidance** - "Is it safe to take these together?"

What would you like to know about your medications today?`

// Sentinel errors returned by Send. None of them ever reaches the
// chat transcript.
var (
	// ErrEmptyMessage is returned when the input is blank after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy is returned while a previous send is still in flight.
	ErrBusy = errors.New("a message is already in flight")

	// ErrCanceled is returned when the caller abandons the request, by
	// leaving the chat view, before a reply arrives. The user message
	// stays in the transcript; no assistant reply is appended.
	ErrCanceled = errors.New("send canceled")
)

// =============================================================================
// INTERFACES
// =============================================================================

// Sender is the slice of the API client the controller needs.
type Sender interface {
	SendMessage(ctx context.Context, req api.ChatMessageRequest) (*api.ChatMessageResponse, error)
}

// Recorder persists messages as they enter the transcript. Recording is
// best-effort: a failed write never blocks or alters the conversation.
type Recorder interface {
	SaveMessage(sessionID, conversationID string, msg model.Message) error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns one chat conversation. Safe for concurrent use; the
// UI calls Send from command goroutines while the view reads Messages.
type Controller struct {
	mu       sync.Mutex
	session  *model.Session
	sender   Sender
	recorder Recorder

	offline    bool
	disclaimer string
	insights   *api.CogittoInsights
}

// NewController creates a controller over a fresh session. The history
// is empty until Start seeds the welcome message.
func NewController(sender Sender) *Controller {
	return &Controller{
		session: model.NewSession(),
		sender:  sender,
	}
}

// SetRecorder attaches a message recorder. Pass nil to disable.
func (c *Controller) SetRecorder(r Recorder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recorder = r
}

// Start seeds the conversation with the welcome message and returns it.
// The welcome is generated locally so the greeting appears instantly,
// before any network traffic.
func (c *Controller) Start() model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	welcome := model.NewAssistantMessage(model.AssistantMessage{
		ID:        "welcome",
		Content:   welcomeContent,
		RiskLevel: model.RiskLow,
	})
	c.session.Append(welcome)
	c.record(welcome)
	return welcome
}

// =============================================================================
// SEND
// =============================================================================

// Send runs one full exchange: append the user message, request a
// reply, append exactly one assistant message. On any backend failure
// the assistant message comes from the fallback generator with the
// offline note attached, and the returned error is nil; the transcript
// always moves forward.
//
// Blank input returns ErrEmptyMessage. A send while another is in
// flight returns ErrBusy. In both cases the history is untouched.
// A canceled context returns ErrCanceled without appending a reply or
// marking the session offline.
func (c *Controller) Send(ctx context.Context, input string) (model.Message, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.session.Pending {
		c.mu.Unlock()
		return model.Message{}, ErrBusy
	}
	c.session.Pending = true

	userMsg := model.NewUserMessage(input)
	c.session.Append(userMsg)
	c.record(userMsg)

	req := api.ChatMessageRequest{
		Message:        input,
		SessionID:      c.session.SessionID,
		ConversationID: c.session.ConversationID,
	}
	c.mu.Unlock()

	// Network round trip happens outside the lock so the view can keep
	// reading the history while the spinner runs.
	resp, err := c.sender.SendMessage(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.session.Pending = false }()

	// A canceled context means the user abandoned the question, not
	// that the backend failed. No reply is owed and the session does
	// not go offline.
	if err != nil && errors.Is(err, context.Canceled) {
		return model.Message{}, ErrCanceled
	}

	var assistant model.Message
	if err != nil || resp == nil {
		assistant = c.fallbackReply(input)
	} else {
		assistant = c.liveReply(resp)
	}

	c.session.Append(assistant)
	c.record(assistant)
	return assistant, nil
}

// liveReply converts a backend response into an assistant message and
// records the session-level metadata that came with it. Caller holds mu.
func (c *Controller) liveReply(resp *api.ChatMessageResponse) model.Message {
	c.session.AdoptConversationID(resp.ConversationID)
	c.offline = false
	c.disclaimer = resp.Disclaimer
	insights := resp.CogittoInsights
	c.insights = &insights

	wire := resp.AssistantResponse
	timestamp, err := time.Parse(time.RFC3339, wire.Timestamp)
	if err != nil {
		timestamp = time.Time{}
	}

	return model.NewAssistantMessage(model.AssistantMessage{
		ID:                   wire.ID,
		Content:              wire.Content,
		Timestamp:            timestamp,
		MentionedMedications: resp.CogittoInsights.MentionedMedications,
		RiskLevel:            model.ParseRiskLevel(wire.RiskLevel),
		AIModel:              wire.AIModel,
		ConfidenceScore:      wire.ConfidenceScore,
	})
}

// fallbackReply synthesizes an offline assistant message. Caller holds mu.
func (c *Controller) fallbackReply(input string) model.Message {
	c.offline = true
	c.insights = nil
	fb := fallback.Respond(input)

	return model.NewAssistantMessage(model.AssistantMessage{
		Content:              fb.Content + offlineNote,
		MentionedMedications: fb.MentionedMedications,
		RiskLevel:            fb.RiskLevel,
		AIModel:              fb.AIModel,
	})
}

// record persists one message if a recorder is attached. Caller holds mu.
func (c *Controller) record(msg model.Message) {
	if c.recorder == nil {
		return
	}
	// Best-effort: the conversation does not depend on local history.
	_ = c.recorder.SaveMessage(c.session.SessionID, c.session.ConversationID, msg)
}

// =============================================================================
// READ ACCESS
// =============================================================================

// Messages returns a copy of the transcript, oldest first.
func (c *Controller) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Messages()
}

// Pending reports whether an exchange is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Pending
}

// Offline reports whether the most recent reply came from the fallback.
func (c *Controller) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

// SessionID returns the locally generated session identifier.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.SessionID
}

// ConversationID returns the backend-assigned conversation identifier,
// or "" before the first successful exchange.
func (c *Controller) ConversationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.ConversationID
}

// Disclaimer returns the safety disclaimer from the latest live reply.
func (c *Controller) Disclaimer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disclaimer
}

// Insights returns the structured analysis from the latest live reply,
// or nil when the latest reply was offline.
func (c *Controller) Insights() *api.CogittoInsights {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.insights == nil {
		return nil
	}
	insights := *c.insights
	return &insights
}

// FollowupQuestions returns the backend's suggested next questions from
// the latest live reply. Empty when offline.
func (c *Controller) FollowupQuestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.insights == nil {
		return nil
	}
	out := make([]string, len(c.insights.FollowupQuestions))
	copy(out, c.insights.FollowupQuestions)
	return out
}

// UserMessageCount returns how many user messages the transcript holds.
// The suggestion chips hide after the first one.
func (c *Controller) UserMessageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.UserMessageCount()
}
