// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fallback provides the deterministic offline responder used when
// the Cogitto backend is unreachable.
//
// Responses come from a small fixed rule table and carry no authority over
// real medical content: every response is tagged with the fallback model
// marker so callers can label it clearly in the UI.
package fallback
