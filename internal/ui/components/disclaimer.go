// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/cogitto/cogitto-tui/internal/ui/styles"
	"github.com/cogitto/cogitto-tui/internal/util"
)

// =============================================================================
// MEDICAL DISCLAIMER BANNER
// =============================================================================

// DefaultDisclaimer is shown until the backend supplies its own text.
const DefaultDisclaimer = "This information is for educational purposes only. " +
	"Always consult your healthcare provider before making medication decisions."

// Disclaimer is the persistent medical disclaimer banner under the chat.
type Disclaimer struct {
	Text    string
	Width   int
	Visible bool
	theme   *styles.Theme
}

// NewDisclaimer creates the banner with the default text, visible.
func NewDisclaimer(theme *styles.Theme) *Disclaimer {
	return &Disclaimer{
		Text:    DefaultDisclaimer,
		Width:   80,
		Visible: true,
		theme:   theme,
	}
}

// SetText replaces the banner text. Empty input keeps the current text,
// so a backend reply without a disclaimer never blanks the banner.
func (d *Disclaimer) SetText(text string) {
	if strings.TrimSpace(text) != "" {
		d.Text = text
	}
}

// SetWidth updates the banner width.
func (d *Disclaimer) SetWidth(width int) {
	d.Width = width
}

// Toggle flips visibility and returns the new state.
func (d *Disclaimer) Toggle() bool {
	d.Visible = !d.Visible
	return d.Visible
}

// View renders the banner, or "" when hidden.
func (d *Disclaimer) View() string {
	if !d.Visible {
		return ""
	}

	wrapWidth := d.Width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	lines := util.WrapWidth(d.Text, wrapWidth)

	return d.theme.Disclaimer.Width(d.Width - 2).
		Render(strings.Join(lines, "\n"))
}
