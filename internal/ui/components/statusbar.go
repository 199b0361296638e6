// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// statusbar.go - Bottom status bar with operator and key hints.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theclinic/clinic-tui/internal/ui/styles"
	"github.com/theclinic/clinic-tui/internal/util"
)

// Shortcut is one key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom bar: operator on the left, shortcuts on
// the right, truncated to fit.
type StatusBar struct {
	theme *styles.Theme
}

// NewStatusBar creates a status bar bound to the given theme.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// Render draws the bar at the given width.
func (b *StatusBar) Render(operator string, shortcuts []Shortcut, width int) string {
	var hints []string
	for _, s := range shortcuts {
		hints = append(hints,
			b.theme.ShortcutKey.Render(s.Key)+" "+b.theme.ShortcutDesc.Render(s.Desc))
	}
	right := strings.Join(hints, "  ")

	left := operator
	gap := width - util.StringWidth(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		right = ""
		gap = width - util.StringWidth(left) - 2
		if gap < 0 {
			gap = 0
		}
	}

	return b.theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
