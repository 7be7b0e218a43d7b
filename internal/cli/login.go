// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - The login and logout commands.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/cogitto/cogitto-tui/internal/api"
	"github.com/cogitto/cogitto-tui/internal/auth"
	"github.com/cogitto/cogitto-tui/internal/config"
)

// clientFor builds an API client from config plus CLI overrides.
func clientFor(args Args, tokens api.TokenSource) *api.Client {
	cfg := config.Global()
	clientCfg := cfg.ClientConfig()
	if args.BaseURL != "" {
		clientCfg.BaseURL = args.BaseURL
	}
	return api.NewClient(clientCfg, tokens)
}

// HandleLogin prompts for credentials, authenticates against the
// backend, and stores the token pair for later runs.
func HandleLogin(args Args) error {
	if err := RequiresTTY("log in"); err != nil {
		return err
	}

	store, err := auth.NewStore("")
	if err != nil {
		return err
	}

	if user := store.CurrentUser(); user != nil && store.IsAuthenticated() {
		fmt.Printf("Already signed in as %s. Run 'cogitto logout' first to switch accounts.\n", user.Email)
		return nil
	}

	email, err := promptLine("Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	client := clientFor(args, store)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tokens, err := client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("incorrect email or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if err := store.SaveCredentials(tokens); err != nil {
		return fmt.Errorf("authenticated but could not store credentials: %w", err)
	}

	name := tokens.User.FullName
	if name == "" {
		name = tokens.User.Email
	}
	if !args.Quiet {
		fmt.Printf("Signed in as %s.\n", name)
	}
	return nil
}

// HandleLogout removes stored credentials.
func HandleLogout(args Args) error {
	store, err := auth.NewStore("")
	if err != nil {
		return err
	}

	wasAuthenticated := store.IsAuthenticated()
	if err := store.Logout(); err != nil {
		return err
	}

	if args.Quiet {
		return nil
	}
	if wasAuthenticated {
		fmt.Println("Signed out.")
	} else {
		fmt.Println("Not signed in.")
	}
	return nil
}
