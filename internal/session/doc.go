// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session drives one chat conversation against the Cogitto
// backend.
//
// The Controller owns the message history and the exchange lifecycle:
// it appends the user message optimistically, sends it to the backend,
// and appends exactly one assistant reply per send. When the backend is
// unreachable, times out, or returns garbage, the reply comes from the
// local fallback generator instead and is tagged as offline; a send
// never surfaces a transport error to the user.
//
// Sends are serialized. While one exchange is in flight, further sends
// are rejected with ErrBusy so the conversation stays strictly ordered.
package session
