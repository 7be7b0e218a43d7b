// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cogitto/cogitto-tui/internal/api"
	"github.com/cogitto/cogitto-tui/internal/fallback"
	"github.com/cogitto/cogitto-tui/internal/model"
)

// fakeSender scripts the backend for controller tests.
type fakeSender struct {
	mu       sync.Mutex
	requests []api.ChatMessageRequest
	respond  func(req api.ChatMessageRequest) (*api.ChatMessageResponse, error)
	block    chan struct{} // when non-nil, SendMessage waits on it
}

func (f *fakeSender) SendMessage(ctx context.Context, req api.ChatMessageRequest) (*api.ChatMessageResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.respond(req)
}

func (f *fakeSender) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func liveResponse(conversationID, content, risk string) func(api.ChatMessageRequest) (*api.ChatMessageResponse, error) {
	return func(req api.ChatMessageRequest) (*api.ChatMessageResponse, error) {
		return &api.ChatMessageResponse{
			ConversationID: conversationID,
			SessionID:      req.SessionID,
			AssistantResponse: api.WireMessage{
				ID:        "a1",
				Role:      "assistant",
				Content:   content,
				Timestamp: "2025-03-01T10:00:00Z",
				RiskLevel: risk,
				AIModel:   "cogitto-v2",
			},
			CogittoInsights: api.CogittoInsights{
				MentionedMedications: []string{"aspirin"},
				FollowupQuestions:    []string{"What dose are you taking?"},
			},
			Disclaimer: "Always consult your healthcare provider.",
		}, nil
	}
}

func failingResponse(err error) func(api.ChatMessageRequest) (*api.ChatMessageResponse, error) {
	return func(api.ChatMessageRequest) (*api.ChatMessageResponse, error) {
		return nil, err
	}
}

// =============================================================================
// START TESTS
// =============================================================================

func TestController_StartSeedsWelcome(t *testing.T) {
	c := NewController(&fakeSender{})

	welcome := c.Start()
	if welcome.Role != model.RoleAssistant {
		t.Errorf("Welcome role = %q, want assistant", welcome.Role)
	}
	if welcome.ID != "welcome" {
		t.Errorf("Welcome ID = %q, want %q", welcome.ID, "welcome")
	}
	if welcome.RiskLevel != model.RiskLow {
		t.Errorf("Welcome risk = %q, want low", welcome.RiskLevel)
	}
	if !strings.Contains(welcome.Content, "Welcome to Cogitto AI") {
		t.Error("Welcome content missing greeting")
	}

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("History length = %d, want 1", len(msgs))
	}
}

func TestController_SessionIDShape(t *testing.T) {
	c := NewController(&fakeSender{})
	if !strings.HasPrefix(c.SessionID(), "cogitto_session_") {
		t.Errorf("SessionID = %q, want cogitto_session_ prefix", c.SessionID())
	}
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_LiveExchange(t *testing.T) {
	sender := &fakeSender{respond: liveResponse("conv_1", "Aspirin thins the blood.", "medium")}
	c := NewController(sender)
	c.Start()

	reply, err := c.Send(context.Background(), "Tell me about aspirin")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if reply.Content != "Aspirin thins the blood." {
		t.Errorf("Reply content = %q", reply.Content)
	}
	if reply.RiskLevel != model.RiskMedium {
		t.Errorf("Reply risk = %q, want medium", reply.RiskLevel)
	}
	if reply.AIModel != "cogitto-v2" {
		t.Errorf("Reply model = %q", reply.AIModel)
	}

	// Welcome + user + assistant, in order.
	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("History length = %d, want 3", len(msgs))
	}
	if msgs[1].Role != model.RoleUser || msgs[1].Content != "Tell me about aspirin" {
		t.Errorf("User message = %+v", msgs[1])
	}
	if msgs[2].Role != model.RoleAssistant {
		t.Errorf("Assistant message = %+v", msgs[2])
	}

	if c.Offline() {
		t.Error("Controller should be online after a live reply")
	}
	if c.ConversationID() != "conv_1" {
		t.Errorf("ConversationID = %q, want conv_1", c.ConversationID())
	}
	if c.Disclaimer() != "Always consult your healthcare provider." {
		t.Errorf("Disclaimer = %q", c.Disclaimer())
	}
	if got := c.FollowupQuestions(); len(got) != 1 || got[0] != "What dose are you taking?" {
		t.Errorf("FollowupQuestions = %v", got)
	}
}

func TestSend_BlankInputIsNoOp(t *testing.T) {
	sender := &fakeSender{respond: liveResponse("conv_1", "hi", "low")}
	c := NewController(sender)
	c.Start()

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := c.Send(context.Background(), input)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q) error = %v, want ErrEmptyMessage", input, err)
		}
	}

	if sender.requestCount() != 0 {
		t.Errorf("Backend called %d times for blank input", sender.requestCount())
	}
	if len(c.Messages()) != 1 {
		t.Errorf("History grew on blank input: %d messages", len(c.Messages()))
	}
}

func TestSend_TrimsInput(t *testing.T) {
	sender := &fakeSender{respond: liveResponse("conv_1", "hi", "low")}
	c := NewController(sender)

	if _, err := c.Send(context.Background(), "  aspirin?  "); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if got := sender.requests[0].Message; got != "aspirin?" {
		t.Errorf("Sent message = %q, want trimmed", got)
	}
}

func TestSend_RejectsWhilePending(t *testing.T) {
	block := make(chan struct{})
	sender := &fakeSender{
		respond: liveResponse("conv_1", "hi", "low"),
		block:   block,
	}
	c := NewController(sender)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Send(context.Background(), "first")
	}()

	// Wait for the first send to reach the backend.
	for sender.requestCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	if !c.Pending() {
		t.Error("Pending should be true while in flight")
	}
	_, err := c.Send(context.Background(), "second")
	if !errors.Is(err, ErrBusy) {
		t.Errorf("Concurrent Send error = %v, want ErrBusy", err)
	}

	close(block)
	<-done

	if c.Pending() {
		t.Error("Pending should clear after the exchange")
	}
	if sender.requestCount() != 1 {
		t.Errorf("Backend called %d times, want 1", sender.requestCount())
	}

	// The controller accepts new sends once the flight lands.
	if _, err := c.Send(context.Background(), "third"); err != nil {
		t.Errorf("Send after completion failed: %v", err)
	}
}

func TestSend_ConversationIDLatch(t *testing.T) {
	conv := "conv_first"
	sender := &fakeSender{}
	sender.respond = func(req api.ChatMessageRequest) (*api.ChatMessageResponse, error) {
		resp, _ := liveResponse(conv, "ok", "low")(req)
		return resp, nil
	}
	c := NewController(sender)

	c.Send(context.Background(), "one")
	if c.ConversationID() != "conv_first" {
		t.Fatalf("ConversationID = %q", c.ConversationID())
	}

	// A different ID in a later reply must not replace the first.
	conv = "conv_other"
	c.Send(context.Background(), "two")
	if c.ConversationID() != "conv_first" {
		t.Errorf("ConversationID changed to %q, latch broken", c.ConversationID())
	}

	// Second request carries the latched ID.
	if got := sender.requests[1].ConversationID; got != "conv_first" {
		t.Errorf("Second request conversation_id = %q", got)
	}
	// First request carried none.
	if got := sender.requests[0].ConversationID; got != "" {
		t.Errorf("First request conversation_id = %q, want empty", got)
	}
}

// =============================================================================
// FALLBACK TESTS
// =============================================================================

func TestSend_FallbackOnError(t *testing.T) {
	sender := &fakeSender{respond: failingResponse(errors.New("connection refused"))}
	c := NewController(sender)
	c.Start()

	reply, err := c.Send(context.Background(), "Can I take ibuprofen with warfarin?")
	if err != nil {
		t.Fatalf("Send must not surface backend errors, got: %v", err)
	}

	if reply.AIModel != fallback.ModelName {
		t.Errorf("Fallback model = %q, want %q", reply.AIModel, fallback.ModelName)
	}
	if reply.RiskLevel != model.RiskHigh {
		t.Errorf("Fallback risk = %q, want high", reply.RiskLevel)
	}
	if !strings.HasSuffix(reply.Content, "*Note: Currently in offline mode.*") {
		t.Error("Fallback reply missing offline note")
	}
	if !c.Offline() {
		t.Error("Controller should report offline after fallback")
	}

	// Exactly one assistant message was appended.
	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("History length = %d, want 3", len(msgs))
	}
}

func TestSend_RecoversAfterFallback(t *testing.T) {
	failing := true
	sender := &fakeSender{}
	sender.respond = func(req api.ChatMessageRequest) (*api.ChatMessageResponse, error) {
		if failing {
			return nil, errors.New("boom")
		}
		return liveResponse("conv_1", "live again", "low")(req)
	}
	c := NewController(sender)

	c.Send(context.Background(), "hello")
	if !c.Offline() {
		t.Fatal("Expected offline after failure")
	}
	if c.Insights() != nil {
		t.Error("Insights should be nil after fallback")
	}

	failing = false
	reply, err := c.Send(context.Background(), "hello again")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply.Content != "live again" {
		t.Errorf("Reply content = %q", reply.Content)
	}
	if c.Offline() {
		t.Error("Controller should be back online after a live reply")
	}
}

func TestSend_CanceledAppendsNoReplyAndStaysOnline(t *testing.T) {
	// The client wraps a canceled request the same way as any transport
	// failure, with the cancellation as the cause.
	canceled := &api.ClientError{Type: api.ErrTypeConnection, Message: "request failed", Cause: context.Canceled}
	sender := &fakeSender{respond: failingResponse(canceled)}
	c := NewController(sender)
	c.Start()

	_, err := c.Send(context.Background(), "Can I take ibuprofen with warfarin?")
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("Send error = %v, want ErrCanceled", err)
	}

	// The abandoned question stays; no fallback reply follows it.
	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("History length = %d, want 2", len(msgs))
	}
	if msgs[1].Role != model.RoleUser {
		t.Errorf("Last message role = %q, want user", msgs[1].Role)
	}
	if c.Offline() {
		t.Error("A user cancel must not mark the session offline")
	}
	if c.Pending() {
		t.Error("Pending should clear after a canceled send")
	}

	// The controller accepts a fresh send afterwards.
	sender.respond = liveResponse("conv_1", "still here", "low")
	if _, err := c.Send(context.Background(), "hello again"); err != nil {
		t.Errorf("Send after cancel failed: %v", err)
	}
}

func TestSend_PendingClearsAfterFallback(t *testing.T) {
	sender := &fakeSender{respond: failingResponse(errors.New("boom"))}
	c := NewController(sender)

	c.Send(context.Background(), "hello")
	if c.Pending() {
		t.Error("Pending should clear even on the fallback path")
	}
}

// =============================================================================
// RECORDER TESTS
// =============================================================================

// fakeRecorder captures recorded messages, optionally failing.
type fakeRecorder struct {
	mu    sync.Mutex
	saved []model.Message
	err   error
}

func (f *fakeRecorder) SaveMessage(sessionID, conversationID string, msg model.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, msg)
	return f.err
}

func TestController_RecordsMessages(t *testing.T) {
	sender := &fakeSender{respond: liveResponse("conv_1", "ok", "low")}
	rec := &fakeRecorder{}

	c := NewController(sender)
	c.SetRecorder(rec)
	c.Start()
	c.Send(context.Background(), "hello")

	if len(rec.saved) != 3 {
		t.Fatalf("Recorded %d messages, want 3", len(rec.saved))
	}
	if rec.saved[0].ID != "welcome" {
		t.Errorf("First recorded = %q, want welcome", rec.saved[0].ID)
	}
	if rec.saved[1].Role != model.RoleUser {
		t.Errorf("Second recorded role = %q, want user", rec.saved[1].Role)
	}
	if rec.saved[2].Role != model.RoleAssistant {
		t.Errorf("Third recorded role = %q, want assistant", rec.saved[2].Role)
	}
}

func TestController_RecorderFailureIsIgnored(t *testing.T) {
	sender := &fakeSender{respond: liveResponse("conv_1", "ok", "low")}
	rec := &fakeRecorder{err: errors.New("disk full")}

	c := NewController(sender)
	c.SetRecorder(rec)

	if _, err := c.Send(context.Background(), "hello"); err != nil {
		t.Errorf("Send failed on recorder error: %v", err)
	}
	if len(c.Messages()) != 2 {
		t.Errorf("History length = %d, want 2", len(c.Messages()))
	}
}
