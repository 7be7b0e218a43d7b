// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogitto/cogitto-tui/internal/session"
)

// Update handles messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)
	}

	// Everything else (spinner ticks, cursor blinks) flows to the
	// active components. Spinner ticks double as transcript refreshes
	// so the optimistic user message shows up while a send is pending.
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.thinking, cmd = m.thinking.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.controller.Pending() {
		m.refresh()
	}

	return m, tea.Batch(cmds...)
}

// handleResize recomputes component widths and the viewport height.
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.disclaimer.SetWidth(width)
	m.suggestions.SetWidth(width)
	m.messageList.SetWidth(width - 2)
	m.input.Width = width - 6

	m.viewport.Width = width
	m.viewport.Height = m.viewportHeight()
	m.refresh()
}

// handleKey routes a key press.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Back):
		if m.cancelSend != nil {
			// The reply for a canceled send lands while the dashboard is
			// showing, so reset the spinner and input here.
			m.cancelSend()
			m.cancelSend = nil
			m.thinking.Stop()
			m.input.Focus()
		}
		return m, backCmd

	case key.Matches(msg, m.keyMap.Disclaimer):
		m.disclaimer.Toggle()
		m.viewport.Height = m.viewportHeight()
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.NextSuggest):
		if m.showingSuggestions() {
			m.suggestions.Next()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PrevSuggest):
		if m.showingSuggestions() {
			m.suggestions.Prev()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit sends the typed input, or the selected suggestion when
// the input is empty and the chips are showing.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	if m.controller.Pending() {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" && m.showingSuggestions() {
		text = m.suggestions.Current()
	}
	if text == "" {
		return m, nil
	}

	m.errText = ""
	m.input.SetValue("")
	m.input.Blur()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelSend = cancel

	// The send runs off the UI goroutine; the user message is appended
	// by the controller before the network wait, and the spinner tick
	// refresh picks it up on the next frame.
	return m, tea.Batch(m.sendCmd(ctx, text), m.thinking.Start())
}

// handleReply folds a completed send back into the view.
func (m Model) handleReply(msg ReplyMsg) (Model, tea.Cmd) {
	m.thinking.Stop()
	m.input.Focus()
	m.cancelSend = nil

	switch {
	case msg.Err == nil:
		// Live or fallback reply; either way the transcript advanced.
	case errors.Is(msg.Err, session.ErrBusy),
		errors.Is(msg.Err, session.ErrEmptyMessage),
		errors.Is(msg.Err, session.ErrCanceled):
		// Nothing new in the transcript.
	default:
		m.errText = msg.Err.Error()
	}

	m.refresh()
	return m, textinput.Blink
}
