// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogitto/cogitto-tui/internal/ui/components"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the chat screen.
// Layout: header + messages (viewport) + [suggestions] + [spinner or
// error] + input + disclaimer + status bar.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sections := []string{m.header.View(), m.viewport.View()}

	if m.showingSuggestions() {
		sections = append(sections, m.suggestions.View())
	}

	if m.thinking.Active() {
		sections = append(sections, m.thinking.View())
	} else if m.errText != "" {
		sections = append(sections, styles.RenderError(m.errText))
	}

	sections = append(sections, m.renderInput())

	if banner := m.disclaimer.View(); banner != "" {
		sections = append(sections, banner)
	}

	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderInput renders the bordered input line.
func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

// renderStatusBar renders the key binding help line with the
// connection state on the right.
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		m.shortcut("Enter", "send"),
		m.shortcut("Tab", "suggestions"),
		m.shortcut("C-t", "disclaimer"),
		m.shortcut("Esc", "dashboard"),
		m.shortcut("C-c", "quit"),
	}
	left := strings.Join(shortcuts, "  ")

	var right string
	if m.controller.Offline() {
		right = components.OfflineBadge(m.theme)
	} else {
		right = components.ConnectedBadge(m.theme)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return m.theme.StatusBar.Width(m.width).
		Render(left + strings.Repeat(" ", gap) + right)
}

// shortcut renders one "key description" pair.
func (m Model) shortcut(keyLabel, desc string) string {
	return m.theme.ShortcutKey.Render(keyLabel) + " " + m.theme.ShortcutDesc.Render(desc)
}

// viewportHeight computes the rows left for the transcript after the
// fixed chrome around it.
func (m Model) viewportHeight() int {
	chrome := lipgloss.Height(m.header.View()) +
		lipgloss.Height(m.renderInput()) +
		1 // status bar

	if banner := m.disclaimer.View(); banner != "" {
		chrome += lipgloss.Height(banner)
	}
	if m.showingSuggestions() {
		chrome += lipgloss.Height(m.suggestions.View())
	}

	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	return h
}
