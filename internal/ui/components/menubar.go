// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// menubar.go - Module navigation menu for the clinic workspace.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theclinic/clinic-tui/internal/access"
	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/nav"
	"github.com/theclinic/clinic-tui/internal/ui/styles"
)

// Menu is the two-level navigation menu: module headers across the
// top, route entries below the selected module. Entries the operator
// cannot access render disabled and cannot be selected.
type Menu struct {
	theme *styles.Theme

	modules []nav.Module
	user    *api.User

	moduleIdx int
	itemIdx   int
	open      bool
}

// NewMenu builds a menu over the full catalog for the given operator.
func NewMenu(theme *styles.Theme, user *api.User) *Menu {
	return &Menu{
		theme:   theme,
		modules: nav.Modules(),
		user:    user,
	}
}

// SetUser swaps the operator whose permissions gate the entries.
func (m *Menu) SetUser(user *api.User) {
	m.user = user
}

// IsOpen reports whether the route list is expanded.
func (m *Menu) IsOpen() bool { return m.open }

// Toggle opens or closes the route list for the selected module.
func (m *Menu) Toggle() {
	m.open = !m.open
	m.itemIdx = 0
}

// Close collapses the route list.
func (m *Menu) Close() { m.open = false }

// NextModule moves the module selection right, wrapping.
func (m *Menu) NextModule() {
	m.moduleIdx = (m.moduleIdx + 1) % len(m.modules)
	m.itemIdx = 0
}

// PrevModule moves the module selection left, wrapping.
func (m *Menu) PrevModule() {
	m.moduleIdx = (m.moduleIdx - 1 + len(m.modules)) % len(m.modules)
	m.itemIdx = 0
}

// NextItem moves the route selection down, wrapping.
func (m *Menu) NextItem() {
	routes := m.modules[m.moduleIdx].Routes
	if len(routes) > 0 {
		m.itemIdx = (m.itemIdx + 1) % len(routes)
	}
}

// PrevItem moves the route selection up, wrapping.
func (m *Menu) PrevItem() {
	routes := m.modules[m.moduleIdx].Routes
	if len(routes) > 0 {
		m.itemIdx = (m.itemIdx - 1 + len(routes)) % len(routes)
	}
}

// Selected returns the highlighted route and whether the operator may
// open it. ok is false while the menu is collapsed.
func (m *Menu) Selected() (route nav.Route, allowed, ok bool) {
	if !m.open {
		return nav.Route{}, false, false
	}
	routes := m.modules[m.moduleIdx].Routes
	if m.itemIdx >= len(routes) {
		return nav.Route{}, false, false
	}
	route = routes[m.itemIdx]
	return route, access.CanAccessRoute(m.user, route.Path), true
}

// Render draws the module bar and, when open, the route list.
func (m *Menu) Render(width int) string {
	var heads []string
	for i, mod := range m.modules {
		style := m.theme.MenuItem
		if !access.CanAccessModule(m.user, mod.Key, mod.Routes) {
			style = m.theme.MenuDisabled
		}
		if i == m.moduleIdx {
			style = m.theme.MenuSelected
		}
		heads = append(heads, style.Render(mod.Label))
	}
	bar := m.theme.Header.Width(width).Render(strings.Join(heads, " "))

	if !m.open {
		return bar
	}

	var items []string
	for i, route := range m.modules[m.moduleIdx].Routes {
		style := m.theme.MenuItem
		if !access.CanAccessRoute(m.user, route.Path) {
			style = m.theme.MenuDisabled
		}
		if i == m.itemIdx {
			style = m.theme.MenuSelected
		}
		items = append(items, style.Render(route.Title))
	}
	list := lipgloss.JoinVertical(lipgloss.Left, items...)
	return lipgloss.JoinVertical(lipgloss.Left, bar, list)
}
