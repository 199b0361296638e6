// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav holds the declarative navigation catalog for the clinic TUI.
//
// The catalog is the single source of truth for which routes exist: the tab
// manager, the access policy and the workspace menu all derive their working
// tables from it. Routes carry a stable icon identifier, never a renderable
// glyph; the UI layer resolves identifiers at the presentation boundary.
package nav
