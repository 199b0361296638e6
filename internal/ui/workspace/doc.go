// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace is the authenticated surface of the clinic TUI:
// the module menu, the tab bar and the active page. It owns the view
// cache that keeps one live page model per open tab, so switching tabs
// restores each page exactly as the operator left it. Every navigation
// passes through the route guard before anything mounts.
package workspace
