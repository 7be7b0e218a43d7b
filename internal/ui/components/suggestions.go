// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cogitto/cogitto-tui/internal/ui/styles"
	"github.com/cogitto/cogitto-tui/internal/util"
)

// =============================================================================
// QUICK SUGGESTION CHIPS
// =============================================================================

// DefaultSuggestions are the starter questions offered before the user
// has asked anything.
var DefaultSuggestions = []string{
	"Can I take ibuprofen with warfarin?",
	"What is acetaminophen used for?",
	"Tell me about aspirin for heart health",
	"Are there interactions with my medications?",
	"What are the side effects of lisinopril?",
	"Is it safe to take Tylenol and Advil together?",
}

// Suggestions is the selectable list of starter questions. Navigation
// wraps at both ends.
type Suggestions struct {
	Items    []string
	Selected int
	Width    int
	theme    *styles.Theme
}

// NewSuggestions creates the component with the default question set.
func NewSuggestions(theme *styles.Theme) *Suggestions {
	return &Suggestions{
		Items: DefaultSuggestions,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the available width.
func (s *Suggestions) SetWidth(width int) {
	s.Width = width
}

// Next moves the selection down, wrapping to the top.
func (s *Suggestions) Next() {
	if len(s.Items) == 0 {
		return
	}
	s.Selected = (s.Selected + 1) % len(s.Items)
}

// Prev moves the selection up, wrapping to the bottom.
func (s *Suggestions) Prev() {
	if len(s.Items) == 0 {
		return
	}
	s.Selected = (s.Selected - 1 + len(s.Items)) % len(s.Items)
}

// Current returns the selected question, or "" when the list is empty.
func (s *Suggestions) Current() string {
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		return ""
	}
	return s.Items[s.Selected]
}

// View renders the title and one chip per question.
func (s *Suggestions) View() string {
	if len(s.Items) == 0 {
		return ""
	}

	chipWidth := s.Width - 8
	if chipWidth < 24 {
		chipWidth = 24
	}

	lines := []string{s.theme.SuggestionTitle.Render("Try asking:")}
	for i, item := range s.Items {
		style := s.theme.SuggestionChip
		if i == s.Selected {
			style = s.theme.SuggestionSelected
		}
		lines = append(lines, style.Render(util.TruncateWidth(item, chipWidth)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
