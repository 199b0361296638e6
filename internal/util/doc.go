// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the clinic TUI.
//
// It contains UTF-8 safe text truncation for tab titles and table cells,
// and crash-safe file writing used by the persisted-state layer.
package util
