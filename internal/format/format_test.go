// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"reflect"
	"testing"
)

// =============================================================================
// SPAN PARSING TESTS
// =============================================================================

func TestParseSpans(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "no emphasis",
			input: "plain text",
			want:  []Span{{Text: "plain text"}},
		},
		{
			name:  "leading emphasis",
			input: "**Warning**: avoid combo",
			want: []Span{
				{Text: "Warning", Emphasized: true},
				{Text: ": avoid combo"},
			},
		},
		{
			name:  "middle emphasis",
			input: "take **acetaminophen** instead",
			want: []Span{
				{Text: "take "},
				{Text: "acetaminophen", Emphasized: true},
				{Text: " instead"},
			},
		},
		{
			name:  "multiple pairs",
			input: "**ibuprofen** and **warfarin**",
			want: []Span{
				{Text: "ibuprofen", Emphasized: true},
				{Text: " and "},
				{Text: "warfarin", Emphasized: true},
			},
		},
		{
			name:  "odd delimiter stays literal",
			input: "broken **bold",
			want:  []Span{{Text: "broken **bold"}},
		},
		{
			name:  "trailing unmatched after a pair",
			input: "**ok** then **broken",
			want: []Span{
				{Text: "ok", Emphasized: true},
				{Text: " then **broken"},
			},
		},
		{
			name:  "whole line emphasized",
			input: "**everything**",
			want:  []Span{{Text: "everything", Emphasized: true}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSpans(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseSpans(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestFormat_SpecExample(t *testing.T) {
	blocks := Format("**Warning**: avoid combo\n\n• Use acetaminophen instead")

	if len(blocks) != 3 {
		t.Fatalf("len(blocks) = %d, want 3", len(blocks))
	}

	if blocks[0].Kind != KindParagraph {
		t.Errorf("blocks[0].Kind = %s, want paragraph", blocks[0].Kind)
	}
	if blocks[0].Text != "Warning: avoid combo" {
		t.Errorf("blocks[0].Text = %q", blocks[0].Text)
	}
	wantSpans := []Span{
		{Text: "Warning", Emphasized: true},
		{Text: ": avoid combo"},
	}
	if !reflect.DeepEqual(blocks[0].Spans, wantSpans) {
		t.Errorf("blocks[0].Spans = %+v, want %+v", blocks[0].Spans, wantSpans)
	}

	if blocks[1].Kind != KindSpacer {
		t.Errorf("blocks[1].Kind = %s, want spacer", blocks[1].Kind)
	}

	if blocks[2].Kind != KindBullet {
		t.Errorf("blocks[2].Kind = %s, want bullet", blocks[2].Kind)
	}
	if blocks[2].Text != "Use acetaminophen instead" {
		t.Errorf("blocks[2].Text = %q", blocks[2].Text)
	}
}

func TestFormat_LineKinds(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
		text string
	}{
		{"paragraph", "regular text", KindParagraph, "regular text"},
		{"bullet dot", "• first item", KindBullet, "first item"},
		{"bullet dash", "- second item", KindBullet, "second item"},
		{"warning glyph kept", "⚠️ check with your doctor", KindAnnouncement, "⚠️ check with your doctor"},
		{"siren glyph", "🚨 urgent notice", KindAnnouncement, "🚨 urgent notice"},
		{"pill glyph", "💊 aspirin", KindAnnouncement, "💊 aspirin"},
		{"wave glyph", "👋 welcome", KindAnnouncement, "👋 welcome"},
		{"quoted line unwrapped", `"hello there"`, KindParagraph, "hello there"},
		{"inner quotes kept", `say "hi" now`, KindParagraph, `say "hi" now`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := Format(tc.line)
			if len(blocks) != 1 {
				t.Fatalf("len(blocks) = %d, want 1", len(blocks))
			}
			if blocks[0].Kind != tc.kind {
				t.Errorf("Kind = %s, want %s", blocks[0].Kind, tc.kind)
			}
			if blocks[0].Text != tc.text {
				t.Errorf("Text = %q, want %q", blocks[0].Text, tc.text)
			}
		})
	}
}

func TestFormat_BlankLinesBecomeSpacers(t *testing.T) {
	blocks := Format("one\n\n\ntwo")

	kinds := make([]Kind, len(blocks))
	for i, b := range blocks {
		kinds[i] = b.Kind
	}
	want := []Kind{KindParagraph, KindSpacer, KindSpacer, KindParagraph}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

func TestFormat_QuotedEmptyLinesProduceNoBlock(t *testing.T) {
	blocks := Format("before\n\"\"\n\"   \"\nafter")

	kinds := make([]Kind, len(blocks))
	for i, b := range blocks {
		kinds[i] = b.Kind
	}
	want := []Kind{KindParagraph, KindParagraph}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	if blocks[0].Text != "before" || blocks[1].Text != "after" {
		t.Errorf("texts = %q, %q", blocks[0].Text, blocks[1].Text)
	}
}

func TestFormat_StripsOneQuoteLayerOnly(t *testing.T) {
	blocks := Format(`""double wrapped""`)
	if blocks[0].Text != `"double wrapped"` {
		t.Errorf("Text = %q, want one layer stripped", blocks[0].Text)
	}
}

func TestFormat_QuotedBulletClassifiedAfterUnwrap(t *testing.T) {
	blocks := Format(`"• quoted item"`)
	if blocks[0].Kind != KindBullet {
		t.Errorf("Kind = %s, want bullet", blocks[0].Kind)
	}
	if blocks[0].Text != "quoted item" {
		t.Errorf("Text = %q", blocks[0].Text)
	}
}

// =============================================================================
// IDEMPOTENCE
// =============================================================================

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		"**Warning**: avoid combo\n\n• Use acetaminophen instead",
		"⚠️ **MAJOR INTERACTION FOUND**\n\nThere is an interaction between **ibuprofen** and **warfarin**.",
		"plain paragraph\n• one\n• two\n\ndone",
		"💡 **Try asking**:\n- \"What is aspirin used for?\"",
		"before\n\"\"\nafter",
	}

	for _, input := range inputs {
		first := Format(input)
		second := Format(Reconstruct(first))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("re-formatting reconstruction changed blocks for %q:\nfirst:  %+v\nsecond: %+v", input, first, second)
		}
	}
}
