// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the top-level Bubble Tea model that routes
// between the login, dashboard, and chat views. The router owns the
// credential store and builds a fresh chat session for every login.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogitto/cogitto-tui/internal/auth"
	"github.com/cogitto/cogitto-tui/internal/config"
	"github.com/cogitto/cogitto-tui/internal/session"
	"github.com/cogitto/cogitto-tui/internal/storage"
	"github.com/cogitto/cogitto-tui/internal/ui/chat"
	"github.com/cogitto/cogitto-tui/internal/ui/dashboard"
	"github.com/cogitto/cogitto-tui/internal/ui/login"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

// =============================================================================
// ROUTES
// =============================================================================

// Route identifies the active view.
type Route int

const (
	RouteLogin Route = iota
	RouteDashboard
	RouteChat
)

// Backend is the slice of the API client the TUI needs: authentication
// for the login form and message delivery for the chat session.
type Backend interface {
	login.Authenticator
	session.Sender
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model.
type App struct {
	theme *styles.Theme
	cfg   *config.Config

	backend Backend
	creds   *auth.Store
	history *storage.HistoryStore

	route     Route
	login     login.Model
	dashboard dashboard.Model
	chat      chat.Model
	hasViews  bool // dashboard and chat are built on first login

	width  int
	height int
}

// NewApp builds the root model. A stored credential skips the login
// form; expired tokens still land on the dashboard and surface as a
// 401 on the first send, which the chat view renders as an offline
// fallback rather than a crash. history may be nil when local history
// is disabled.
func NewApp(cfg *config.Config, backend Backend, creds *auth.Store, history *storage.HistoryStore, theme *styles.Theme) App {
	a := App{
		theme:   theme,
		cfg:     cfg,
		backend: backend,
		creds:   creds,
		history: history,
		route:   RouteLogin,
		login:   login.New(backend, theme),
	}

	if creds.IsAuthenticated() {
		a.enterAuthenticated(a.userName())
	}
	return a
}

// userName returns the display name from the stored user snapshot.
func (a App) userName() string {
	if user := a.creds.CurrentUser(); user != nil {
		return user.FullName
	}
	return ""
}

// sessionLister adapts the nullable history store for the dashboard.
// A typed nil *HistoryStore must become a true nil interface.
func (a App) sessionLister() dashboard.SessionLister {
	if a.history == nil {
		return nil
	}
	return a.history
}

// enterAuthenticated builds the post-login views and starts a fresh
// chat session. Called once per login so a returning user never sees
// the previous account's transcript.
func (a *App) enterAuthenticated(userName string) {
	controller := session.NewController(a.backend)
	if a.history != nil {
		controller.SetRecorder(a.history)
	}
	controller.Start()

	a.dashboard = dashboard.New(a.theme, userName, a.sessionLister())

	a.chat = chat.New(controller, a.theme)
	a.chat.SetUserName(userName)
	a.chat.SetShowDisclaimer(a.cfg.UI.ShowDisclaimer)
	a.chat.SetShowSuggestions(a.cfg.UI.ShowSuggestions)

	a.hasViews = true
	a.route = RouteDashboard
	a.resizeViews()
}

// resizeViews pushes the current window size into every built view, so
// a view built after startup still knows the terminal dimensions.
func (a *App) resizeViews() {
	if a.width == 0 {
		return
	}
	msg := tea.WindowSizeMsg{Width: a.width, Height: a.height}
	a.login, _ = a.login.Update(msg)
	if a.hasViews {
		a.dashboard, _ = a.dashboard.Update(msg)
		a.chat, _ = a.chat.Update(msg)
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the active view.
func (a App) Init() tea.Cmd {
	if a.route == RouteLogin {
		return a.login.Init()
	}
	return a.chat.Init()
}

// Update routes messages to the active view and handles the
// navigation messages the views emit.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		a.resizeViews()
		return a, nil

	case login.LoggedInMsg:
		// Persist failures are not fatal; the session still works, the
		// user just logs in again next launch.
		_ = a.creds.SaveCredentials(msg.Tokens)
		a.enterAuthenticated(msg.Tokens.User.FullName)
		return a, a.chat.Init()

	case dashboard.OpenChatMsg:
		a.route = RouteChat
		return a, a.chat.Init()

	case chat.BackMsg:
		a.route = RouteDashboard
		a.dashboard.ReloadRecent()
		return a, nil

	case dashboard.LogoutMsg:
		_ = a.creds.Logout()
		a.login = login.New(a.backend, a.theme)
		a.route = RouteLogin
		a.resizeViews()
		return a, a.login.Init()
	}

	var cmd tea.Cmd
	switch a.route {
	case RouteLogin:
		a.login, cmd = a.login.Update(msg)
	case RouteDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case RouteChat:
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

// View renders the active view.
func (a App) View() string {
	switch a.route {
	case RouteDashboard:
		return a.dashboard.View()
	case RouteChat:
		return a.chat.View()
	default:
		return a.login.View()
	}
}
