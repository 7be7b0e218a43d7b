// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// cogitto-tui.
//
// Configuration lives in ~/.cogitto/config.toml. Loading starts from
// built-in defaults, lays the file on top, then applies environment
// variable overrides, so a missing or partial file always yields a
// complete, validated Config.
//
// A Watcher can follow the config file and deliver freshly loaded
// configs when it changes, letting theme or endpoint edits apply
// without restarting the TUI.
package config
