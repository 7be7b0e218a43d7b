// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth persists Cogitto credentials between runs.
//
// The backend owns authentication; this package only stores what the
// backend hands back after login: the access token, the refresh token,
// and a snapshot of the user profile. The three entries live together in
// a single JSON file under ~/.cogitto with 0600 permissions, written
// atomically so a crash mid-save can never corrupt a working login.
//
// The Store implements api.TokenSource, so it plugs straight into the
// API client.
package auth
