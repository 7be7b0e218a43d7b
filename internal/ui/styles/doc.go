// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for cogitto-tui.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark
// detection, with the medical risk palette kept deliberately loud:
// a high-risk interaction warning must never blend into the theme.
package styles
