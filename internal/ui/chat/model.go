// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogitto/cogitto-tui/internal/model"
	"github.com/cogitto/cogitto-tui/internal/session"
	"github.com/cogitto/cogitto-tui/internal/ui/components"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ReplyMsg carries the result of a completed send.
type ReplyMsg struct {
	Message model.Message
	Err     error
}

// BackMsg asks the router to return to the dashboard.
type BackMsg struct{}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	theme *styles.Theme

	width  int
	height int
	ready  bool

	controller *session.Controller

	// UI components
	viewport    viewport.Model
	input       textinput.Model
	thinking    components.Thinking
	header      *components.Header
	disclaimer  *components.Disclaimer
	suggestions *components.Suggestions
	messageList *components.MessageList

	keyMap KeyMap

	// cancelSend aborts the in-flight request when the user leaves the
	// chat. The controller then answers through the fallback path.
	cancelSend context.CancelFunc

	errText string
}

// New creates the chat view over an existing session controller.
func New(controller *session.Controller, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Ask about medications, interactions, side effects..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.PlaceholderStyle = theme.InputPlaceholder
	input.TextStyle = theme.InputText
	input.CharLimit = 2000
	input.Focus()

	return Model{
		theme:       theme,
		controller:  controller,
		viewport:    viewport.New(80, 20),
		input:       input,
		thinking:    components.NewThinking(theme),
		header:      components.NewHeader(theme),
		disclaimer:  components.NewDisclaimer(theme),
		suggestions: components.NewSuggestions(theme),
		messageList: components.NewMessageList(theme),
		keyMap:      DefaultKeyMap(),
	}
}

// SetUserName sets the logged-in name shown in the header.
func (m *Model) SetUserName(name string) {
	m.header.SetUserName(name)
}

// SetShowDisclaimer applies the configured disclaimer visibility.
func (m *Model) SetShowDisclaimer(show bool) {
	m.disclaimer.Visible = show
}

// SetShowSuggestions applies the configured suggestion visibility.
// Off means the chip list never appears, not even for a fresh session.
func (m *Model) SetShowSuggestions(show bool) {
	if !show {
		m.suggestions.Items = nil
	}
}

// Controller exposes the underlying session controller.
func (m Model) Controller() *session.Controller {
	return m.controller
}

// Init focuses the input; the welcome message is already seeded by the
// controller before the program starts.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// COMMANDS
// =============================================================================

// sendCmd runs a send off the UI goroutine and reports the result.
func (m Model) sendCmd(ctx context.Context, input string) tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		msg, err := controller.Send(ctx, input)
		return ReplyMsg{Message: msg, Err: err}
	}
}

// backCmd returns control to the dashboard.
func backCmd() tea.Msg {
	return BackMsg{}
}

// =============================================================================
// STATE HELPERS
// =============================================================================

// showingSuggestions reports whether the starter chips should be visible:
// only before the first user message and never while a reply is pending.
func (m Model) showingSuggestions() bool {
	return len(m.suggestions.Items) > 0 &&
		m.controller.UserMessageCount() == 0 &&
		!m.controller.Pending()
}

// refresh re-renders the transcript into the viewport and syncs the
// header and disclaimer with the controller.
func (m *Model) refresh() {
	m.messageList.SetMessages(m.controller.Messages())
	m.viewport.SetContent(m.messageList.View())
	m.viewport.GotoBottom()

	m.header.SetOffline(m.controller.Offline())
	m.disclaimer.SetText(m.controller.Disclaimer())
}
