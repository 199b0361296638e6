// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tabbar.go - Horizontal tab bar for the clinic workspace.
//
// Renders the open tabs plus a fixed dashboard entry on the left. Tab
// identity and ordering are owned by the tabs manager; this component
// only draws what it is given.
package components

import (
	"fmt"
	"strings"

	"github.com/theclinic/clinic-tui/internal/tabs"
	"github.com/theclinic/clinic-tui/internal/ui/styles"
	"github.com/theclinic/clinic-tui/internal/util"
)

// tabTitleWidth caps each tab label so a full bar fits narrow terminals.
const tabTitleWidth = 18

// pinMarker prefixes pinned tab labels.
const pinMarker = "●"

// dashboardLabel is the fixed leftmost entry.
const dashboardLabel = "Início"

// TabBar renders the open tabs for the workspace.
type TabBar struct {
	theme *styles.Theme
}

// NewTabBar creates a tab bar bound to the given theme.
func NewTabBar(theme *styles.Theme) *TabBar {
	return &TabBar{theme: theme}
}

// Render draws the bar. activePath selects the highlighted entry; the
// dashboard entry highlights when no open tab is active.
func (b *TabBar) Render(open []tabs.Tab, activePath string, width int) string {
	var cells []string

	dashStyle := b.theme.TabInactive
	if activeIndex(open, activePath) < 0 {
		dashStyle = b.theme.TabActive
	}
	cells = append(cells, dashStyle.Render(dashboardLabel))

	for i, tab := range open {
		label := util.TruncateWidth(tab.Title, tabTitleWidth)
		if tab.Pinned {
			label = b.theme.TabPinned.Render(pinMarker) + " " + label
		}

		style := b.theme.TabInactive
		if i == activeIndex(open, activePath) {
			style = b.theme.TabActive
		}
		cells = append(cells, style.Render(label))
	}

	counter := b.theme.TabCounter.Render(fmt.Sprintf("%d/%d", len(open), tabs.MaxTabs))
	cells = append(cells, counter)

	bar := strings.Join(cells, " ")
	return b.theme.TabBar.Width(width).MaxWidth(width).Render(bar)
}

// activeIndex returns the index of the tab owning activePath, -1 when
// the active route belongs to no open tab.
func activeIndex(open []tabs.Tab, activePath string) int {
	for i, tab := range open {
		if tab.Path == activePath || strings.HasPrefix(activePath, tab.Path+"/") {
			return i
		}
	}
	return -1
}
