// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw assistant text into structured display blocks.
//
// The formatter is a pure function over the message content: it never
// caches, never mutates its input, and produces the same block sequence
// for the same input. Rendering (colors, wrapping) is the UI's job; this
// package only classifies lines and splits out inline emphasis.
package format
