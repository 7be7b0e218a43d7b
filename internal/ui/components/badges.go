// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cogitto/cogitto-tui/internal/model"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

// =============================================================================
// RISK AND MEDICATION BADGES
// =============================================================================

// titleCaser renders lowercase backend identifiers as display labels.
var titleCaser = cases.Title(language.English)

// RiskLabel returns the display label for a risk level, e.g. "High Risk".
func RiskLabel(level model.RiskLevel) string {
	return titleCaser.String(level.String()) + " Risk"
}

// RiskBadge renders the colored risk badge for an assistant message.
// Low risk renders nothing: only elevated levels warrant a badge.
func RiskBadge(theme *styles.Theme, level model.RiskLevel) string {
	if !level.Elevated() {
		return ""
	}
	return theme.RiskBadge(level).Render(RiskLabel(level))
}

// MedicationBadges renders chips for the medications an answer mentions.
func MedicationBadges(theme *styles.Theme, meds []string) string {
	if len(meds) == 0 {
		return ""
	}

	chips := make([]string, 0, len(meds))
	for _, med := range meds {
		name := titleCaser.String(strings.TrimSpace(med))
		if name == "" {
			continue
		}
		chips = append(chips, theme.MedBadge.Render(name))
	}
	if len(chips) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// OfflineBadge renders the offline-mode indicator.
func OfflineBadge(theme *styles.Theme) string {
	return theme.OfflineBadge.Render(styles.StatusIndicators.Offline + " OFFLINE")
}

// ConnectedBadge renders the connected indicator for the status bar.
func ConnectedBadge(theme *styles.Theme) string {
	return theme.ConnectedBadge.Render(styles.StatusIndicators.Success + " Connected")
}
