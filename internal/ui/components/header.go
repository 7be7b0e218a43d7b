// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with Cogitto branding
// =============================================================================

// Header is the title bar shown above every view.
type Header struct {
	Title    string // main title, default "Cogitto AI"
	Subtitle string // tagline under the title
	UserName string // shown when logged in
	Offline  bool   // true while replies come from the fallback engine
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a Header with default branding.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:    "Cogitto AI",
		Subtitle: "Your intelligent medication assistant",
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetUserName sets the logged-in user's display name.
func (h *Header) SetUserName(name string) {
	h.UserName = name
}

// SetOffline updates the offline indicator.
func (h *Header) SetOffline(offline bool) {
	h.Offline = offline
}

// View renders the header. Narrow terminals get the compact form.
func (h *Header) View() string {
	if h.Width < 60 {
		return h.ViewCompact()
	}

	width := h.Width
	innerWidth := width - 6

	accent := lipgloss.NewStyle().Foreground(styles.Blue)
	brand := accent.Render("< ") +
		h.theme.HeaderTitle.Render(h.Title) +
		accent.Render(" >")

	subtitleParts := []string{h.theme.HeaderSubtitle.Render(h.Subtitle)}
	if h.UserName != "" {
		subtitleParts = append(subtitleParts,
			lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(h.UserName))
	}
	if h.Offline {
		subtitleParts = append(subtitleParts, h.theme.OfflineBadge.Render("OFFLINE"))
	}
	subtitle := strings.Join(subtitleParts, " ")

	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)
	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Teal).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return box.Render(content)
}

// ViewCompact renders a single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	accent := lipgloss.NewStyle().Foreground(styles.Blue)
	parts := []string{
		accent.Render("<") + h.theme.HeaderTitle.Render(h.Title) + accent.Render(">"),
	}
	if h.UserName != "" {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(styles.TextMuted).Render(h.UserName))
	}
	if h.Offline {
		parts = append(parts, h.theme.OfflineBadge.Render("OFFLINE"))
	}

	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	return strings.Join(parts, separator)
}
