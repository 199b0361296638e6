// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the clinic TUI.
// All colors use Lip Gloss AdaptiveColor so the interface remains
// readable on both light and dark terminals; the configured theme can
// force one or the other.
package styles
