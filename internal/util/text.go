// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Display-width helpers for terminal rendering. Medication advice quotes
// drug names in CJK markets and the assistant leans on emoji glyphs, so
// every measurement here is in terminal columns, never bytes or runes.

// StringWidth returns the display width of s in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth truncates s to at most maxWidth columns, appending "…"
// when anything was cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// PadWidth pads s with trailing spaces to exactly width columns,
// truncating first if s is too wide.
func PadWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// WrapWidth wraps s into lines of at most maxWidth columns, breaking on
// spaces. A single word wider than maxWidth is hard-split so pathological
// input (long URLs in assistant replies) cannot blow out the viewport.
func WrapWidth(s string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{s}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)

		if w > maxWidth {
			if lineWidth > 0 {
				flush()
			}
			for _, piece := range splitWidth(word, maxWidth) {
				pw := runewidth.StringWidth(piece)
				if pw == maxWidth {
					lines = append(lines, piece)
				} else {
					line.WriteString(piece)
					lineWidth = pw
				}
			}
			continue
		}

		sep := 0
		if lineWidth > 0 {
			sep = 1
		}
		if lineWidth+sep+w > maxWidth {
			flush()
			sep = 0
		}
		if sep == 1 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += w
	}
	if lineWidth > 0 {
		flush()
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// splitWidth chops s into pieces of at most maxWidth columns.
func splitWidth(s string, maxWidth int) []string {
	var pieces []string
	var piece strings.Builder
	width := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > maxWidth && width > 0 {
			pieces = append(pieces, piece.String())
			piece.Reset()
			width = 0
		}
		piece.WriteRune(r)
		width += rw
	}
	if piece.Len() > 0 {
		pieces = append(pieces, piece.String())
	}
	return pieces
}
