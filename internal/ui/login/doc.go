// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the public entry screen of the clinic TUI:
// username and password fields, a remember-me toggle and the messages
// surfaced by failed or throttled attempts. On success it emits
// SucceededMsg and the root model swaps in the workspace.
package login
