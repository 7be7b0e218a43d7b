// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for cogitto-tui:
// the header bar, message bubbles, risk and medication badges, the
// quick-suggestion chips, the thinking spinner, and the medical
// disclaimer banner. Components render from a shared styles.Theme and
// hold no network or session state of their own.
package components
