// cogitto-tui - A terminal client for the Cogitto medication assistant.
//
// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogitto/cogitto-tui/internal/api"
	"github.com/cogitto/cogitto-tui/internal/auth"
	"github.com/cogitto/cogitto-tui/internal/cli"
	"github.com/cogitto/cogitto-tui/internal/config"
	"github.com/cogitto/cogitto-tui/internal/storage"
	"github.com/cogitto/cogitto-tui/internal/ui"
	"github.com/cogitto/cogitto-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdLogin:
		if err := cli.HandleLogin(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdLogout:
		if err := cli.HandleLogout(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdHistory:
		if err := cli.HandleHistory(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI starts the TUI interface.
func runTUI(args cli.Args) {
	cfg := config.Global()
	if args.BaseURL != "" {
		cfg.API.BaseURL = args.BaseURL
	}

	theme := styles.NewTheme()

	creds, err := auth.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open credential store: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.ClientConfig(), creds)

	// Local history is optional. Failing to open the database degrades
	// to a session without persistence rather than refusing to start.
	var history *storage.HistoryStore
	if cfg.History.Enabled && !args.NoHistory {
		history = openHistory(cfg, args)
	}
	if history != nil {
		defer history.Close()
	}

	// Reload config edits live: SetGlobal swaps what new readers see and
	// ApplyConfig points the running client at the new base URL and
	// timeout. A --api-url override keeps precedence across reloads.
	if path, err := config.Path(); err == nil {
		onReload := func(next *config.Config) {
			if args.BaseURL != "" {
				next.API.BaseURL = args.BaseURL
			}
			config.SetGlobal(next)
			client.ApplyConfig(next.ClientConfig())
		}
		if watcher, err := config.NewWatcher(path, onReload); err == nil {
			if err := watcher.Watch(); err == nil {
				defer watcher.Close()
			}
		}
	}

	app := ui.NewApp(cfg, client, creds, history, theme)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running cogitto: %v\n", err)
		os.Exit(1)
	}
}

// openHistory opens the history database and applies the retention
// policy. Any failure is reported and treated as history-off.
func openHistory(cfg *config.Config, args cli.Args) *storage.HistoryStore {
	path, err := cfg.HistoryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not resolve history path: %v\n", err)
		return nil
	}

	history, err := storage.OpenHistory(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: local history disabled: %v\n", err)
		return nil
	}

	if cfg.History.RetentionDays > 0 {
		retention := time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
		if _, err := history.Prune(retention); err != nil && args.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: history prune failed: %v\n", err)
		}
	}
	return history
}
