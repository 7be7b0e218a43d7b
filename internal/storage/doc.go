// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat history locally in SQLite.
//
// Every message that enters a transcript is appended to a single
// messages table keyed by (session_id, message_id). The store backs
// the `cogitto history` command and the dashboard's recent activity
// panel; the live conversation never reads from it, so a broken or
// disabled store cannot affect chatting.
//
// The database uses the pure Go SQLite driver (modernc.org/sqlite),
// WAL journaling, and a single connection, since SQLite allows only
// one writer at a time.
package storage
