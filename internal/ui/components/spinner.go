// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

// =============================================================================
// THINKING SPINNER
// =============================================================================

// Thinking is the spinner shown while a reply is pending.
type Thinking struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	active    bool
	theme     *styles.Theme
}

// NewThinking creates the spinner with an ASCII-safe frame set.
func NewThinking(theme *styles.Theme) Thinking {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner

	return Thinking{
		spinner: s,
		message: "Cogitto AI is thinking",
		theme:   theme,
	}
}

// Start activates the spinner and records the start time.
func (t *Thinking) Start() tea.Cmd {
	t.active = true
	t.startTime = time.Now()
	return t.spinner.Tick
}

// Stop deactivates the spinner.
func (t *Thinking) Stop() {
	t.active = false
}

// Active reports whether the spinner is running.
func (t *Thinking) Active() bool {
	return t.active
}

// Update advances the animation while active.
func (t Thinking) Update(msg tea.Msg) (Thinking, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the spinner line with elapsed time, or "" when idle.
func (t Thinking) View() string {
	if !t.active {
		return ""
	}

	line := t.spinner.View() + " " + t.theme.ThinkingText.Render(t.message+"...")
	if !t.startTime.IsZero() {
		elapsed := int(time.Since(t.startTime).Seconds())
		line += " " + t.theme.ShortcutDesc.Render(fmt.Sprintf("(%ds)", elapsed))
	}
	return line
}
