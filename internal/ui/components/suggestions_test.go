// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

func TestSuggestions_DefaultQuestions(t *testing.T) {
	s := NewSuggestions(testTheme())

	if len(s.Items) != 6 {
		t.Fatalf("Got %d default suggestions, want 6", len(s.Items))
	}
	if s.Items[0] != "Can I take ibuprofen with warfarin?" {
		t.Errorf("First suggestion = %q", s.Items[0])
	}
	if s.Current() != s.Items[0] {
		t.Errorf("Initial selection = %q, want first item", s.Current())
	}
}

func TestSuggestions_NavigationWraps(t *testing.T) {
	s := NewSuggestions(testTheme())

	// Prev from the top wraps to the bottom.
	s.Prev()
	if s.Selected != len(s.Items)-1 {
		t.Errorf("Prev from top selected %d, want %d", s.Selected, len(s.Items)-1)
	}

	// Next from the bottom wraps to the top.
	s.Next()
	if s.Selected != 0 {
		t.Errorf("Next from bottom selected %d, want 0", s.Selected)
	}

	s.Next()
	s.Next()
	if s.Current() != s.Items[2] {
		t.Errorf("Current = %q, want third item", s.Current())
	}
}

func TestSuggestions_View(t *testing.T) {
	s := NewSuggestions(testTheme())
	s.SetWidth(100)

	out := s.View()
	if !strings.Contains(out, "Try asking:") {
		t.Errorf("View missing title:\n%s", out)
	}
	for _, item := range s.Items {
		if !strings.Contains(out, item) {
			t.Errorf("View missing suggestion %q", item)
		}
	}
}

func TestSuggestions_EmptyList(t *testing.T) {
	s := NewSuggestions(testTheme())
	s.Items = nil

	// Navigation and rendering must tolerate an empty list.
	s.Next()
	s.Prev()
	if s.Current() != "" {
		t.Errorf("Current on empty list = %q, want empty", s.Current())
	}
	if s.View() != "" {
		t.Error("View on empty list should be empty")
	}
}
