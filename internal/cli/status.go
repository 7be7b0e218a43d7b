// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - The status command.
//
// Command: status
// Aliases: s
//
// Sections:
//   Backend:  Configured URL and live reachability
//   Account:  Signed-in user (from the local credential store)
//   History:  Whether local history is on and how many sessions it holds
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cogitto/cogitto-tui/internal/api"
	"github.com/cogitto/cogitto-tui/internal/auth"
	"github.com/cogitto/cogitto-tui/internal/config"
	"github.com/cogitto/cogitto-tui/internal/storage"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("36")).
				MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	valueGreenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	valueRedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	valueDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

// statusData is the JSON shape of the status command.
type statusData struct {
	BackendURL     string `json:"backend_url"`
	Reachable      bool   `json:"reachable"`
	ReachableError string `json:"reachable_error,omitempty"`
	SignedIn       bool   `json:"signed_in"`
	UserEmail      string `json:"user_email,omitempty"`
	HistoryEnabled bool   `json:"history_enabled"`
	HistoryPath    string `json:"history_path,omitempty"`
	SessionCount   int    `json:"session_count"`
}

// HandleStatus handles the "status" command.
func HandleStatus(args Args) {
	cfg := config.Global()
	data := statusData{
		BackendURL:     cfg.API.BaseURL,
		HistoryEnabled: cfg.History.Enabled && !args.NoHistory,
	}
	if args.BaseURL != "" {
		data.BackendURL = args.BaseURL
	}

	// A typed nil store must not reach the client as a token source.
	var tokens api.TokenSource
	if store, err := auth.NewStore(""); err == nil {
		tokens = store
		data.SignedIn = store.IsAuthenticated()
		if user := store.CurrentUser(); user != nil {
			data.UserEmail = user.Email
		}
	}

	// Reachability probe with a short bound so status stays snappy
	// even when the backend is down.
	client := clientFor(args, tokens)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.CheckReachable(ctx); err != nil {
		data.ReachableError = err.Error()
	} else {
		data.Reachable = true
	}

	if data.HistoryEnabled {
		if path, err := cfg.HistoryPath(); err == nil {
			data.HistoryPath = path
			if history, err := storage.OpenHistory(path); err == nil {
				if sessions, err := history.ListSessions(); err == nil {
					data.SessionCount = len(sessions)
				}
				history.Close()
			}
		}
	}

	if args.JSON {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	printStatus(data)
}

// printStatus renders the human-readable status report.
func printStatus(data statusData) {
	fmt.Println(statusTitleStyle.Render("Cogitto Status"))

	fmt.Println(sectionStyle.Render("Backend"))
	fmt.Println(labelStyle.Render("URL") + valueStyle.Render(data.BackendURL))
	if data.Reachable {
		fmt.Println(labelStyle.Render("Reachable") + valueGreenStyle.Render("yes"))
	} else {
		fmt.Println(labelStyle.Render("Reachable") + valueRedStyle.Render("no"))
		if data.ReachableError != "" {
			fmt.Println(labelStyle.Render("") + valueDimStyle.Render(data.ReachableError))
		}
	}

	fmt.Println(sectionStyle.Render("Account"))
	if data.SignedIn {
		fmt.Println(labelStyle.Render("Signed in") + valueGreenStyle.Render(data.UserEmail))
	} else {
		fmt.Println(labelStyle.Render("Signed in") + valueDimStyle.Render("no (run 'cogitto login')"))
	}

	fmt.Println(sectionStyle.Render("History"))
	if data.HistoryEnabled {
		fmt.Println(labelStyle.Render("Enabled") + valueGreenStyle.Render("yes"))
		fmt.Println(labelStyle.Render("Database") + valueDimStyle.Render(data.HistoryPath))
		fmt.Println(labelStyle.Render("Sessions") + valueStyle.Render(fmt.Sprintf("%d", data.SessionCount)))
	} else {
		fmt.Println(labelStyle.Render("Enabled") + valueDimStyle.Render("no"))
	}
}
