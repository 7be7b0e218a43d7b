// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and the command table for cogitto-tui.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdHistory
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet     bool
	Verbose   bool
	JSON      bool
	NoHistory bool   // disable local history for this run
	BaseURL   string // override api.base_url for this run

	// Command-specific
	Subcommand string
	Query      string
	Confirm    bool

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `cogitto - medication assistant in your terminal

Cogitto answers questions about medications, interactions, and side
effects. Answers are educational, not medical advice.

Usage:
  cogitto                    Start the TUI (default)
  cogitto login              Sign in and store credentials
  cogitto logout             Remove stored credentials
  cogitto status, s          Show backend and account status
  cogitto history [command]  Browse local chat history
  cogitto version            Show version information
  cogitto help               Show this help

History Commands:
  cogitto history                  List saved sessions
  cogitto history search <text>    Search saved messages
  cogitto history delete <id>      Delete one session
    --confirm                      Required confirmation flag
  cogitto history clear            Delete all saved history
    --confirm                      Required confirmation flag

Global Flags:
  --api-url URL   Override the backend URL for this run
  --no-history    Do not read or write local history
  --json          Machine-readable output where supported
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Environment:
  COGITTO_API_URL             Backend base URL
  COGITTO_API_TIMEOUT_SECS    Request timeout in seconds
  COGITTO_THEME               UI theme: dark, light, auto
  COGITTO_NO_HISTORY          Set to 1 to disable local history

Examples:
  cogitto                            Start the TUI
  cogitto login                      Sign in from the terminal
  cogitto status --json              Status for scripts
  cogitto history search warfarin    Find past interaction questions
  cogitto history delete cogitto_session_123 --confirm

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("cogitto version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument slice. Split out from Parse so
// tests can drive it without touching os.Args.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login", "signin":
		return CmdLogin, parsedArgs

	case "logout", "signout":
		return CmdLogout, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "history", "sessions":
		parseHistoryArgs(&parsedArgs, remaining)
		return CmdHistory, parsedArgs

	// No "-v" alias here: parseGlobalFlags already claims -v for
	// --verbose, so it can never arrive as a command word.
	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: fall back to the TUI rather than erroring,
		// so a stray word never blocks the app.
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdTUI, parsedArgs
	}
}

// parseGlobalFlags extracts global flags and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-history":
			parsedArgs.NoHistory = true
		case "--api-url":
			if i+1 < len(args) {
				i++
				parsedArgs.BaseURL = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--api-url=") {
				parsedArgs.BaseURL = strings.TrimPrefix(arg, "--api-url=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseHistoryArgs parses history command specific arguments.
func parseHistoryArgs(args *Args, remaining []string) {
	var positional []string
	for _, arg := range remaining {
		if arg == "--confirm" {
			args.Confirm = true
			continue
		}
		positional = append(positional, arg)
	}

	if len(positional) > 0 {
		args.Subcommand = positional[0]
		if len(positional) > 1 {
			args.Query = strings.Join(positional[1:], " ")
		}
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		fmt.Printf("{\"version\":%q,\"git_commit\":%q,\"build_date\":%q,\"go_version\":%q}\n",
			Version, GitCommit, BuildDate, runtime.Version())
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
