// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/cogitto/cogitto-tui/internal/model"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

// =============================================================================
// MESSAGE BUBBLE TESTS
// =============================================================================

func TestMessageBubble_UserContent(t *testing.T) {
	msg := model.NewUserMessage("Can I take ibuprofen with warfarin?")
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(80)

	out := bubble.View()
	if !strings.Contains(out, "ibuprofen with") {
		t.Errorf("User bubble missing content:\n%s", out)
	}
	if !strings.Contains(out, "You") {
		t.Errorf("User bubble missing role label:\n%s", out)
	}
}

func TestMessageBubble_AssistantStripsEmphasisMarkers(t *testing.T) {
	msg := model.NewAssistantMessage(model.AssistantMessage{
		Content: "Combining **ibuprofen** and **warfarin** increases bleeding risk.",
	})
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(80)

	out := bubble.View()
	if strings.Contains(out, "**") {
		t.Errorf("Emphasis delimiters leaked into rendered output:\n%s", out)
	}
	if !strings.Contains(out, "ibuprofen") {
		t.Errorf("Assistant bubble missing content:\n%s", out)
	}
	if !strings.Contains(out, "Cogitto AI") {
		t.Errorf("Assistant bubble missing role label:\n%s", out)
	}
}

func TestMessageBubble_AssistantShowsRiskBadge(t *testing.T) {
	msg := model.NewAssistantMessage(model.AssistantMessage{
		Content:              "Avoid this combination.",
		RiskLevel:            model.RiskHigh,
		MentionedMedications: []string{"ibuprofen", "warfarin"},
	})
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(80)

	out := bubble.View()
	if !strings.Contains(out, "High Risk") {
		t.Errorf("High-risk reply should show a risk badge:\n%s", out)
	}
	if !strings.Contains(out, "Ibuprofen") || !strings.Contains(out, "Warfarin") {
		t.Errorf("Medication badges missing:\n%s", out)
	}
}

func TestMessageBubble_LowRiskHasNoBadge(t *testing.T) {
	msg := model.NewAssistantMessage(model.AssistantMessage{
		Content:   "Acetaminophen is a pain reliever.",
		RiskLevel: model.RiskLow,
	})
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(80)

	if strings.Contains(bubble.View(), "Risk") {
		t.Error("Low-risk reply should not show a risk badge")
	}
}

func TestMessageBubble_BulletLines(t *testing.T) {
	msg := model.NewAssistantMessage(model.AssistantMessage{
		Content: "Side effects:\n- dizziness\n- dry cough",
	})
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(80)

	out := bubble.View()
	if !strings.Contains(out, "• dizziness") {
		t.Errorf("Bullet lines should render with the bullet glyph:\n%s", out)
	}
}

func TestMessageBubble_Timestamp(t *testing.T) {
	msg := model.NewUserMessage("hello")
	msg.Timestamp = time.Date(2025, 6, 1, 14, 30, 0, 0, time.Local)

	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(80)
	bubble.ShowTimestamp = true

	if !strings.Contains(bubble.View(), "2:30 PM") {
		t.Errorf("Bubble missing timestamp:\n%s", bubble.View())
	}

	bubble.ShowTimestamp = false
	if strings.Contains(bubble.View(), "2:30 PM") {
		t.Error("Timestamp shown despite ShowTimestamp=false")
	}
}

func TestMessageBubble_SystemCentered(t *testing.T) {
	msg := model.NewSystemMessage("Session restored")
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(80)

	if !strings.Contains(bubble.View(), "Session restored") {
		t.Errorf("System bubble missing content:\n%s", bubble.View())
	}
}

func TestMessageBubble_NarrowWidth(t *testing.T) {
	msg := model.NewAssistantMessage(model.AssistantMessage{
		Content: strings.Repeat("interaction ", 20),
	})
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(10)

	// Must not panic and must still produce output at degenerate widths.
	if bubble.View() == "" {
		t.Error("Bubble produced no output at narrow width")
	}
}

// =============================================================================
// MESSAGE LIST TESTS
// =============================================================================

func TestMessageList_Empty(t *testing.T) {
	list := NewMessageList(testTheme())
	list.SetWidth(80)

	if !strings.Contains(list.View(), "No messages yet") {
		t.Errorf("Empty list output = %q", list.View())
	}
}

func TestMessageList_RendersAllMessages(t *testing.T) {
	list := NewMessageList(testTheme())
	list.SetWidth(80)
	list.SetMessages([]model.Message{
		model.NewUserMessage("first question"),
		model.NewAssistantMessage(model.AssistantMessage{Content: "first answer"}),
	})

	out := list.View()
	if !strings.Contains(out, "first question") || !strings.Contains(out, "first answer") {
		t.Errorf("List missing messages:\n%s", out)
	}
}
