// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - The history command and its subcommands.
//
// Command: history
// Aliases: sessions
//
// Subcommands:
//   (none)          List saved sessions
//   search <text>   Search saved messages
//   delete <id>     Delete one session (--confirm required)
//   clear           Delete all history (--confirm required)
package cli

import (
	"fmt"

	"github.com/cogitto/cogitto-tui/internal/config"
	"github.com/cogitto/cogitto-tui/internal/storage"
)

// HandleHistory handles the "history" command.
func HandleHistory(args Args) error {
	cfg := config.Global()
	if !cfg.History.Enabled || args.NoHistory {
		fmt.Println("Local history is disabled.")
		return nil
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	history, err := storage.OpenHistory(path)
	if err != nil {
		return fmt.Errorf("could not open history database: %w", err)
	}
	defer history.Close()

	switch args.Subcommand {
	case "", "list", "ls":
		return handleHistoryList(history)
	case "search":
		return handleHistorySearch(history, args.Query)
	case "delete", "rm":
		return handleHistoryDelete(history, args)
	case "clear":
		return handleHistoryClear(history, args)
	default:
		return fmt.Errorf("unknown history subcommand %q (try: list, search, delete, clear)", args.Subcommand)
	}
}

func handleHistoryList(history *storage.HistoryStore) error {
	sessions, err := history.ListSessions()
	if err != nil {
		return err
	}
	fmt.Print(storage.FormatSessionList(sessions))
	return nil
}

func handleHistorySearch(history *storage.HistoryStore, query string) error {
	if query == "" {
		return fmt.Errorf("usage: cogitto history search <text>")
	}
	sessions, err := history.SearchMessages(query)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Printf("No messages match %q.\n", query)
		return nil
	}
	fmt.Print(storage.FormatSessionList(sessions))
	return nil
}

func handleHistoryDelete(history *storage.HistoryStore, args Args) error {
	if args.Query == "" {
		return fmt.Errorf("usage: cogitto history delete <session-id> --confirm")
	}
	if !args.Confirm {
		return fmt.Errorf("deleting a session is permanent; re-run with --confirm")
	}
	if err := history.DeleteSession(args.Query); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Printf("Deleted session %s.\n", args.Query)
	}
	return nil
}

func handleHistoryClear(history *storage.HistoryStore, args Args) error {
	if !args.Confirm {
		return fmt.Errorf("clearing history is permanent; re-run with --confirm")
	}
	if err := history.Clear(); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Println("History cleared.")
	}
	return nil
}
