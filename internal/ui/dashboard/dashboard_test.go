// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogitto/cogitto-tui/internal/storage"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

type fakeLister struct {
	sessions []storage.SessionMeta
	err      error
}

func (f *fakeLister) ListSessions() ([]storage.SessionMeta, error) {
	return f.sessions, f.err
}

func newTestDashboard(history SessionLister) Model {
	m := New(styles.NewTheme(), "Alex", history)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestDashboardGreeting(t *testing.T) {
	m := newTestDashboard(nil)

	out := m.View()
	if !strings.Contains(out, "Welcome back, Alex") {
		t.Errorf("Dashboard missing greeting:\n%s", out)
	}
	if !strings.Contains(out, "Start chatting") {
		t.Errorf("Dashboard missing navigation:\n%s", out)
	}
}

func TestDashboardNavigation(t *testing.T) {
	m := newTestDashboard(nil)

	// Enter on the first entry opens the chat.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter produced no command")
	}
	if _, ok := cmd().(OpenChatMsg); !ok {
		t.Error("First entry should open the chat")
	}

	// Down to "Log out".
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := cmd().(LogoutMsg); !ok {
		t.Error("Second entry should log out")
	}

	// Up wraps from the top to the bottom.
	m.selected = 0
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.selected != len(m.entries)-1 {
		t.Errorf("Up from top selected %d, want %d", m.selected, len(m.entries)-1)
	}
}

func TestDashboardRecentSessions(t *testing.T) {
	history := &fakeLister{sessions: []storage.SessionMeta{
		{
			SessionID:    "cogitto_session_1",
			Preview:      "Can I take ibuprofen with warfarin?",
			LastAt:       time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
			MessageCount: 4,
		},
	}}
	m := newTestDashboard(history)

	out := m.View()
	if !strings.Contains(out, "Recent conversations") {
		t.Errorf("Dashboard missing recent panel:\n%s", out)
	}
	if !strings.Contains(out, "ibuprofen") {
		t.Errorf("Dashboard missing session preview:\n%s", out)
	}
	if !strings.Contains(out, "4 msgs") {
		t.Errorf("Dashboard missing message count:\n%s", out)
	}
}

func TestDashboardRecentCapped(t *testing.T) {
	var sessions []storage.SessionMeta
	for i := 0; i < 9; i++ {
		sessions = append(sessions, storage.SessionMeta{
			SessionID: "sess",
			Preview:   "question",
			LastAt:    time.Now(),
		})
	}
	m := newTestDashboard(&fakeLister{sessions: sessions})

	if len(m.recent) != maxRecent {
		t.Errorf("Recent panel holds %d sessions, want %d", len(m.recent), maxRecent)
	}
}

func TestDashboardHistoryErrorHidesPanel(t *testing.T) {
	m := newTestDashboard(&fakeLister{err: errors.New("db locked")})

	if strings.Contains(m.View(), "Recent conversations") {
		t.Error("Listing error should hide the recent panel")
	}
}
