// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard provides the landing view shown after login: a
// greeting, the main navigation, and the most recent chat sessions from
// local history.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cogitto/cogitto-tui/internal/storage"
	"github.com/cogitto/cogitto-tui/internal/ui/components"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
	"github.com/cogitto/cogitto-tui/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// OpenChatMsg asks the router to switch to the chat view.
type OpenChatMsg struct{}

// LogoutMsg asks the app to clear credentials and return to login.
type LogoutMsg struct{}

// =============================================================================
// NAVIGATION
// =============================================================================

// navEntry is one dashboard menu item.
type navEntry struct {
	label  string
	action func() tea.Msg
}

// SessionLister supplies recent sessions for the activity panel.
// A nil lister (history disabled) just hides the panel.
type SessionLister interface {
	ListSessions() ([]storage.SessionMeta, error)
}

// maxRecent caps the recent-activity panel.
const maxRecent = 5

// =============================================================================
// DASHBOARD MODEL
// =============================================================================

// Model is the Bubble Tea model for the dashboard view.
type Model struct {
	theme  *styles.Theme
	header *components.Header

	width  int
	height int

	userName string
	entries  []navEntry
	selected int

	history SessionLister
	recent  []storage.SessionMeta
}

// New creates the dashboard. history may be nil when chat history is
// disabled.
func New(theme *styles.Theme, userName string, history SessionLister) Model {
	m := Model{
		theme:    theme,
		header:   components.NewHeader(theme),
		userName: userName,
		history:  history,
		entries: []navEntry{
			{label: "Start chatting", action: func() tea.Msg { return OpenChatMsg{} }},
			{label: "Log out", action: func() tea.Msg { return LogoutMsg{} }},
			{label: "Quit", action: func() tea.Msg { return tea.Quit() }},
		},
	}
	m.header.SetUserName(userName)
	m.ReloadRecent()
	return m
}

// ReloadRecent refreshes the recent-activity panel. Listing errors just
// leave the panel empty; the dashboard stays usable without history.
// The router calls this when the user returns from a chat.
func (m *Model) ReloadRecent() {
	if m.history == nil {
		m.recent = nil
		return
	}
	sessions, err := m.history.ListSessions()
	if err != nil {
		m.recent = nil
		return
	}
	if len(sessions) > maxRecent {
		sessions = sessions[:maxRecent]
	}
	m.recent = sessions
}

// Init is a no-op.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyQuit):
			return m, tea.Quit
		case key.Matches(msg, keyUp):
			m.selected = (m.selected - 1 + len(m.entries)) % len(m.entries)
		case key.Matches(msg, keyDown):
			m.selected = (m.selected + 1) % len(m.entries)
		case key.Matches(msg, keySelect):
			return m, m.entries[m.selected].action
		}
	}
	return m, nil
}

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
	keySelect = key.NewBinding(key.WithKeys("enter"))
	keyQuit   = key.NewBinding(key.WithKeys("ctrl+c", "q"))
)

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	greeting := "Welcome back"
	if m.userName != "" {
		greeting = "Welcome back, " + m.userName
	}

	lines := []string{
		m.theme.DashboardWelcome.Render(greeting),
		m.theme.FormHint.Render("What would you like to do?"),
		"",
	}

	for i, entry := range m.entries {
		style := m.theme.NavItem
		marker := "  "
		if i == m.selected {
			style = m.theme.NavItemSelected
			marker = "> "
		}
		lines = append(lines, marker+style.Render(entry.label))
	}

	if len(m.recent) > 0 {
		lines = append(lines, "", m.theme.SuggestionTitle.Render("Recent conversations"))
		for _, meta := range m.recent {
			preview := meta.Preview
			if preview == "" {
				preview = meta.SessionID
			}
			lines = append(lines,
				m.theme.RecentItem.Render(util.TruncateWidth(preview, 46))+
					"  "+
					m.theme.RecentMeta.Render(fmt.Sprintf("%s, %d msgs",
						meta.LastAt.Format("Jan 2 15:04"), meta.MessageCount)))
		}
	}

	box := m.theme.DashboardBox.Render(strings.Join(lines, "\n"))

	content := lipgloss.JoinVertical(lipgloss.Left, m.header.View(), "", box)
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
}
