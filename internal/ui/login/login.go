// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the sign-in and registration forms. The view
// validates input locally before touching the network and surfaces
// backend rejections (bad credentials, validation errors) as a banner
// above the form.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cogitto/cogitto-tui/internal/api"
	"github.com/cogitto/cogitto-tui/internal/ui/components"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// LoggedInMsg reports a successful login to the router.
type LoggedInMsg struct {
	Tokens *api.AuthTokens
}

// authResultMsg is the internal outcome of a login or register attempt.
type authResultMsg struct {
	tokens *api.AuthTokens
	err    error
}

// =============================================================================
// AUTHENTICATOR
// =============================================================================

// Authenticator is the slice of the API client the form needs.
type Authenticator interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthTokens, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, error)
}

// =============================================================================
// FORM MODES AND FIELDS
// =============================================================================

// Mode selects between the two forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Field indexes into the input slice. Register shows all four; login
// shows only email and password.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// =============================================================================
// LOGIN MODEL
// =============================================================================

// Model is the Bubble Tea model for the auth screen.
type Model struct {
	theme  *styles.Theme
	header *components.Header

	width  int
	height int

	mode    Mode
	inputs  [fieldCount]textinput.Model
	focused int

	auth    Authenticator
	busy    bool
	errText string
}

// New creates the auth screen in login mode.
func New(auth Authenticator, theme *styles.Theme) Model {
	m := Model{
		theme:  theme,
		header: components.NewHeader(theme),
		auth:   auth,
	}

	mk := func(placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.Prompt = ""
		in.PlaceholderStyle = theme.InputPlaceholder
		in.TextStyle = theme.InputText
		in.CharLimit = 200
		if secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		return in
	}

	m.inputs[fieldName] = mk("Full name", false)
	m.inputs[fieldEmail] = mk("Email", false)
	m.inputs[fieldPassword] = mk("Password", true)
	m.inputs[fieldConfirm] = mk("Confirm password", true)

	m.setMode(ModeLogin)
	return m
}

// setMode switches forms and resets focus to the first visible field.
func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.errText = ""
	m.focused = fieldEmail
	if mode == ModeRegister {
		m.focused = fieldName
	}
	m.applyFocus()
}

// visibleFields returns the field indexes the current mode shows.
func (m Model) visibleFields() []int {
	if m.mode == ModeRegister {
		return []int{fieldName, fieldEmail, fieldPassword, fieldConfirm}
	}
	return []int{fieldEmail, fieldPassword}
}

// applyFocus focuses the selected input and blurs the rest.
func (m *Model) applyFocus() {
	for i := range m.inputs {
		if i == m.focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// cycleFocus moves focus by delta through the visible fields.
func (m *Model) cycleFocus(delta int) {
	fields := m.visibleFields()
	pos := 0
	for i, f := range fields {
		if f == m.focused {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	m.focused = fields[pos]
	m.applyFocus()
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// VALIDATION
// =============================================================================

// validate checks the form locally. Returns "" when the form can be
// submitted.
func (m Model) validate() string {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if email == "" || !strings.Contains(email, "@") {
		return "Enter a valid email address."
	}
	if password == "" {
		return "Enter your password."
	}

	if m.mode == ModeRegister {
		if strings.TrimSpace(m.inputs[fieldName].Value()) == "" {
			return "Enter your full name."
		}
		if len(password) < 8 {
			return "Password must be at least 8 characters."
		}
		if password != m.inputs[fieldConfirm].Value() {
			return "Passwords do not match."
		}
	}
	return ""
}

// =============================================================================
// SUBMIT
// =============================================================================

// submitCmd runs the auth round trip off the UI goroutine. Registration
// chains straight into a login so the user lands on the dashboard.
func (m Model) submitCmd() tea.Cmd {
	auth := m.auth
	mode := m.mode
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	fullName := strings.TrimSpace(m.inputs[fieldName].Value())

	return func() tea.Msg {
		ctx := context.Background()

		if mode == ModeRegister {
			_, err := auth.Register(ctx, api.RegisterRequest{
				Email:    email,
				Password: password,
				FullName: fullName,
			})
			if err != nil {
				return authResultMsg{err: err}
			}
		}

		tokens, err := auth.Login(ctx, api.LoginRequest{Email: email, Password: password})
		if err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{tokens: tokens}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the auth screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		return m, nil

	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = authErrorText(msg.err)
			return m, nil
		}
		return m, func() tea.Msg { return LoggedInMsg{Tokens: msg.tokens} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "ctrl+r":
			if m.mode == ModeLogin {
				m.setMode(ModeRegister)
			} else {
				m.setMode(ModeLogin)
			}
			return m, nil
		case "enter":
			if err := m.validate(); err != "" {
				m.errText = err
				return m, nil
			}
			m.errText = ""
			m.busy = true
			return m, m.submitCmd()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// authErrorText maps client errors onto user-facing banner text.
func authErrorText(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "Incorrect email or password."
	case api.IsValidation(err):
		return err.Error()
	default:
		return "Could not reach Cogitto. Check your connection and try again."
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the auth screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := "Sign in to Cogitto"
	action := "Need an account? Press Ctrl+R to register."
	if m.mode == ModeRegister {
		title = "Create your Cogitto account"
		action = "Have an account? Press Ctrl+R to sign in."
	}

	lines := []string{m.theme.FormTitle.Render(title), ""}

	if m.errText != "" {
		lines = append(lines, styles.RenderError(m.errText), "")
	}

	labels := [fieldCount]string{"Name", "Email", "Password", "Confirm"}
	for _, f := range m.visibleFields() {
		lines = append(lines,
			m.theme.FormLabel.Render(labels[f]),
			m.inputs[f].View(),
		)
	}

	lines = append(lines, "")
	if m.busy {
		lines = append(lines, m.theme.FormButtonBusy.Render("Signing in..."))
	} else {
		lines = append(lines, m.theme.FormButton.Render("Enter to submit"))
	}
	lines = append(lines, m.theme.FormHint.Render(action))

	box := m.theme.FormBox.Render(strings.Join(lines, "\n"))
	content := lipgloss.JoinVertical(lipgloss.Left, m.header.View(), "", box)

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
}
