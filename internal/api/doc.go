// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Cogitto backend.
//
// The Client is a thin request wrapper: it attaches the stored access
// token as a bearer credential to every call, decodes JSON responses, and
// translates transport problems into typed ClientErrors. Chat and auth
// operations are built on top of it.
package api
