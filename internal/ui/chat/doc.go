// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The view owns the scrollback viewport, the input line, and the
// thinking spinner; all conversation state lives in session.Controller.
// Sends run as Bubble Tea commands so the UI stays responsive while a
// reply is pending, and the controller guarantees exactly one assistant
// message per send even when the backend is unreachable.
package chat
