// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strings"
)

// =============================================================================
// BLOCK TYPES
// =============================================================================

// Kind identifies the display treatment of a block.
type Kind int

const (
	// KindSpacer is vertical whitespace from a blank line.
	KindSpacer Kind = iota
	// KindBullet is a bulleted list line (marker stripped).
	KindBullet
	// KindAnnouncement is a warning/info line opened by a marker glyph
	// (marker retained in the visible text).
	KindAnnouncement
	// KindParagraph is a regular text line.
	KindParagraph
)

// String returns the kind name for debugging and test output.
func (k Kind) String() string {
	switch k {
	case KindSpacer:
		return "spacer"
	case KindBullet:
		return "bullet"
	case KindAnnouncement:
		return "announcement"
	case KindParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Span is a run of text with a single emphasis state.
type Span struct {
	Text       string
	Emphasized bool
}

// Block is one display unit produced by Format. Text is the plain
// (delimiter-free) line content; Spans carries the inline emphasis
// segmentation of the same text. Spacer blocks have no text or spans.
type Block struct {
	Kind  Kind
	Text  string
	Spans []Span
}

// =============================================================================
// LINE CLASSIFICATION RULES
// =============================================================================

// bulletMarkers are the recognized list markers, stripped from the text.
var bulletMarkers = []string{"• ", "- "}

// announcementGlyphs open a warning/info/announcement line. Base code
// points are listed without the emoji variation selector so both forms
// match. The glyph stays in the visible text.
var announcementGlyphs = []string{
	"⚠",     // warning sign
	"\U0001f6a8", // rotating light
	"✅",     // check mark
	"ℹ",     // information
	"\U0001f48a", // pill
	"\U0001f4a1", // light bulb
	"\U0001f44b", // waving hand
}

// lineRule pairs a predicate with the block builder it selects. Rules are
// evaluated in order; the first match wins.
type lineRule struct {
	name  string
	match func(line string) bool
	build func(line string) Block
}

// lineRules is the ordered classification table. Bullets are checked
// before announcements so a glyph inside a bullet stays a bullet.
var lineRules = []lineRule{
	{
		name:  "bullet",
		match: func(line string) bool { return bulletMarker(line) != "" },
		build: func(line string) Block {
			text := strings.TrimPrefix(line, bulletMarker(line))
			return newBlock(KindBullet, text)
		},
	},
	{
		name:  "announcement",
		match: func(line string) bool {
			for _, glyph := range announcementGlyphs {
				if strings.HasPrefix(line, glyph) {
					return true
				}
			}
			return false
		},
		build: func(line string) Block {
			return newBlock(KindAnnouncement, line)
		},
	},
	{
		name:  "paragraph",
		match: func(string) bool { return true },
		build: func(line string) Block {
			return newBlock(KindParagraph, line)
		},
	},
}

// bulletMarker returns the marker prefixing the line, or "".
func bulletMarker(line string) string {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return marker
		}
	}
	return ""
}

// newBlock builds a block of the given kind, running the text through
// inline emphasis parsing. Block.Text is the delimiter-free text.
func newBlock(kind Kind, text string) Block {
	spans := ParseSpans(text)
	var plain strings.Builder
	for _, s := range spans {
		plain.WriteString(s.Text)
	}
	return Block{Kind: kind, Text: plain.String(), Spans: spans}
}

// =============================================================================
// FORMAT
// =============================================================================

// Format maps raw assistant text to a sequence of display blocks.
//
// Lines are processed in order: blank lines become spacers; other lines are
// trimmed, unwrapped from a single layer of full-line double quotes, and
// classified through the ordered rule table.
func Format(content string) []Block {
	lines := strings.Split(content, "\n")
	blocks := make([]Block, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blocks = append(blocks, Block{Kind: KindSpacer})
			continue
		}

		trimmed = stripWrappingQuotes(trimmed)
		if strings.TrimSpace(trimmed) == "" {
			// A line that was only a quoted empty string produces no
			// block at all.
			continue
		}

		for _, rule := range lineRules {
			if rule.match(trimmed) {
				blocks = append(blocks, rule.build(trimmed))
				break
			}
		}
	}

	return blocks
}

// stripWrappingQuotes removes exactly one layer of double quotes when a
// matching pair spans the whole line.
func stripWrappingQuotes(line string) string {
	if len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
		return line[1 : len(line)-1]
	}
	return line
}

// =============================================================================
// INLINE EMPHASIS
// =============================================================================

// emphasisDelimiter is the inline bold delimiter.
const emphasisDelimiter = "**"

// ParseSpans splits text into plain and emphasized spans. Delimiter pairs
// are matched left-to-right, non-nested, non-overlapping; a trailing
// unmatched delimiter is left in the text as literal characters.
func ParseSpans(text string) []Span {
	var spans []Span
	rest := text

	for {
		open := strings.Index(rest, emphasisDelimiter)
		if open < 0 {
			break
		}
		closing := strings.Index(rest[open+2:], emphasisDelimiter)
		if closing < 0 {
			// Odd delimiter count: the remainder is literal text.
			break
		}

		if open > 0 {
			spans = append(spans, Span{Text: rest[:open]})
		}
		spans = append(spans, Span{Text: rest[open+2 : open+2+closing], Emphasized: true})
		rest = rest[open+2+closing+2:]
	}

	if rest != "" || len(spans) == 0 {
		spans = append(spans, Span{Text: rest})
	}

	return spans
}

// =============================================================================
// RECONSTRUCTION
// =============================================================================

// Reconstruct renders blocks back to markup text that Format maps onto an
// equivalent block sequence. Quote layers stripped by Format are not
// reintroduced.
func Reconstruct(blocks []Block) string {
	lines := make([]string, 0, len(blocks))

	for _, b := range blocks {
		switch b.Kind {
		case KindSpacer:
			lines = append(lines, "")
		case KindBullet:
			lines = append(lines, bulletMarkers[0]+spanMarkup(b.Spans))
		default:
			lines = append(lines, spanMarkup(b.Spans))
		}
	}

	return strings.Join(lines, "\n")
}

// spanMarkup rebuilds the markup text of a span sequence.
func spanMarkup(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Emphasized {
			sb.WriteString(emphasisDelimiter)
			sb.WriteString(s.Text)
			sb.WriteString(emphasisDelimiter)
		} else {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
