// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// view.go - Workspace composition.
package workspace

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theclinic/clinic-tui/internal/ui/components"
)

// chromeHeight is the fixed vertical budget of menu, tab bar and
// status bar around the page area.
const chromeHeight = 4

func (m *Model) pageHeight() int {
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	menu := m.menu.Render(m.width)
	tabBar := m.tabBar.Render(m.tabs.Tabs(), m.current, m.width)

	page := ""
	if p, ok := m.cache.get(m.activeRoutePath()); ok {
		page = p.View()
	}
	body := lipgloss.NewStyle().
		Width(m.width).
		Height(m.pageHeight()).
		Render(page)

	operator := ""
	if user := m.auth.User(); user != nil {
		operator = user.Username
	}
	status := m.statusBar.Render(operator, m.shortcuts(), m.width)

	sections := []string{menu, tabBar, body}
	if notices := components.RenderNotices(m.deps.Theme, m.notices.Active(), m.width); notices != "" {
		sections = append(sections, notices)
	}
	sections = append(sections, status)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) shortcuts() []components.Shortcut {
	if m.menu.IsOpen() {
		return []components.Shortcut{
			{Key: "←→", Desc: "módulo"},
			{Key: "↑↓", Desc: "item"},
			{Key: "enter", Desc: "abre"},
			{Key: "esc", Desc: "fecha"},
		}
	}
	return []components.Shortcut{
		{Key: "m", Desc: "menu"},
		{Key: "^1-5", Desc: "abas"},
		{Key: "^w", Desc: "fecha"},
		{Key: "^p", Desc: "fixa"},
		{Key: "^l", Desc: "sai"},
	}
}
