// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pages holds the per-route page models of the clinic TUI.
// Every catalog route maps to one page: list routes render a table fed
// by the matching API endpoint, the dashboard and the forced
// password-change form are dedicated models, the rest are static
// placeholders. The workspace keeps pages mounted across tab switches,
// so a page's internal state (cursor, scroll, form fields) must live
// inside its model.
package pages
