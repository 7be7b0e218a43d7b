// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the cogitto-tui
// application.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - AtomicWriteFileWithDir: same, with explicit directory permissions
//     for secret-holding directories such as ~/.cogitto
//
// Text:
//   - TruncateWidth: display-width aware truncation (CJK, emoji)
//   - WrapWidth: display-width aware word wrapping for chat bubbles
package util
