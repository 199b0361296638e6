// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable UI components of the clinic
// TUI: the tab bar, the module menu bar, the status bar and transient
// notices. Components render to strings; the workspace model composes
// them and owns all state transitions.
package components
