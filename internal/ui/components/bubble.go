// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogitto/cogitto-tui/internal/format"
	"github.com/cogitto/cogitto-tui/internal/model"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
	"github.com/cogitto/cogitto-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one chat message as a styled bubble.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageBubble creates a bubble for a message.
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the available rendering width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the bubble for the message's role.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUser()
	case model.RoleAssistant:
		return b.renderAssistant()
	default:
		return b.renderSystem()
	}
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUser() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.contentWidth(12)
	wrapped := strings.Join(util.WrapWidth(content, maxContentWidth), "\n")
	bubbleWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(bubbleWidth).Render(wrapped)
	header := b.header("You")

	// Right-align both lines against the available width.
	leftMargin := b.Width - bubbleWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - Teal tones, left-aligned, badges below
// ==========================================================================

func (b *MessageBubble) renderAssistant() string {
	maxContentWidth := b.contentWidth(12)

	body := b.renderBlocks(format.Format(b.Message.Content), maxContentWidth)
	if body == "" {
		body = "..."
	}
	bubbleWidth := minInt(maxLineWidth(body)+4, b.Width-8)

	bubble := b.theme.AssistantBubble.Width(bubbleWidth).Render(body)
	header := b.header(b.Message.Role.DisplayName())

	lines := []string{header, bubble}

	// Badge row: risk level plus mentioned medications.
	var badges []string
	if risk := RiskBadge(b.theme, b.Message.RiskLevel); risk != "" {
		badges = append(badges, risk)
	}
	if meds := MedicationBadges(b.theme, b.Message.MentionedMedications); meds != "" {
		badges = append(badges, meds)
	}
	if len(badges) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(badges, " ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderBlocks converts formatted blocks into styled, wrapped text.
func (b *MessageBubble) renderBlocks(blocks []format.Block, width int) string {
	var lines []string

	for _, block := range blocks {
		switch block.Kind {
		case format.KindSpacer:
			lines = append(lines, "")
		case format.KindBullet:
			// Continuation lines are indented under the marker.
			wrapped := util.WrapWidth(b.renderSpans(block.Spans), width-2)
			for i, line := range wrapped {
				if i == 0 {
					lines = append(lines, "• "+line)
				} else {
					lines = append(lines, "  "+line)
				}
			}
		default:
			lines = append(lines, util.WrapWidth(b.renderSpans(block.Spans), width)...)
		}
	}

	return strings.Join(lines, "\n")
}

// renderSpans applies bold styling to emphasized spans.
func (b *MessageBubble) renderSpans(spans []format.Span) string {
	var sb strings.Builder
	bold := lipgloss.NewStyle().Bold(true)
	for _, span := range spans {
		if span.Emphasized {
			sb.WriteString(bold.Render(span.Text))
		} else {
			sb.WriteString(span.Text)
		}
	}
	return sb.String()
}

// ==========================================================================
// SYSTEM BUBBLE - Amber tones, centered
// ==========================================================================

func (b *MessageBubble) renderSystem() string {
	content := b.Message.Content
	if content == "" {
		content = "System message"
	}

	maxContentWidth := b.contentWidth(20)
	wrapped := strings.Join(util.WrapWidth(content, maxContentWidth), "\n")
	bubbleWidth := minInt(maxLineWidth(wrapped)+4, b.Width-16)

	bubble := b.theme.SystemBubble.Width(bubbleWidth).Render(wrapped)

	center := lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Center)

	return center.Render(bubble)
}

// ==========================================================================
// HELPERS
// ==========================================================================

// header builds the "role · time" line above a bubble.
func (b *MessageBubble) header(role string) string {
	parts := []string{b.theme.BubbleRole.Render(role)}
	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		parts = append(parts, b.theme.BubbleTime.Render(formatClock(b.Message.Timestamp)))
	}
	return strings.Join(parts, " ")
}

// contentWidth returns the wrap width given chrome (margins plus padding).
func (b *MessageBubble) contentWidth(chrome int) int {
	w := b.Width - chrome
	if w < 20 {
		w = 20
	}
	return w
}

// formatClock renders a short timestamp, with the date when not today.
func formatClock(t time.Time) string {
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("3:04 PM")
	}
	return t.Format("Jan 2, 3:04 PM")
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := util.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a transcript as stacked bubbles.
type MessageList struct {
	Messages       []model.Message
	Width          int
	ShowTimestamps bool
	theme          *styles.Theme
}

// NewMessageList creates an empty list.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		theme:          theme,
	}
}

// SetMessages replaces the displayed transcript.
func (ml *MessageList) SetMessages(messages []model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages separated by blank lines.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return empty.Render("No messages yet. Ask about your medications!")
	}

	bubbles := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n\n")
}
