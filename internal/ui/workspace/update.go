// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// update.go - Workspace event handling.
package workspace

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theclinic/clinic-tui/internal/nav"
	"github.com/theclinic/clinic-tui/internal/tabs"
	"github.com/theclinic/clinic-tui/internal/ui/components"
	"github.com/theclinic/clinic-tui/internal/ui/pages"
)

// refreshTimeout bounds the profile refetch after a password change.
const refreshTimeout = 15 * time.Second

// profileRefreshedMsg reports the post-password-change profile fetch.
type profileRefreshedMsg struct {
	err error
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.cache.setSize(msg.Width, m.pageHeight())
		return m, nil

	case components.NoticeTickMsg:
		if m.notices.Tick() {
			return m, components.NoticeTickCmd()
		}
		return m, nil

	case pages.PasswordChangedMsg:
		// Refetch the profile so the cleared forced flag unlocks
		// navigation, then land on the dashboard.
		authStore := m.auth
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()
			return profileRefreshedMsg{err: authStore.RefreshProfile(ctx)}
		}

	case profileRefreshedMsg:
		m.menu.SetUser(m.auth.User())
		return m, m.navigate(nav.PathDashboard)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Async page messages (fetch results, spinner ticks) may target a
	// page that is no longer active.
	return m, m.cache.broadcast(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	locked := false
	if user := m.auth.User(); user != nil {
		locked = user.ForcePasswordChange
	}

	if m.menu.IsOpen() && !locked {
		return m.handleMenuKey(msg)
	}

	switch msg.String() {
	case "ctrl+q":
		return m, tea.Quit

	case "ctrl+l":
		m.auth.Logout()
		m.Shutdown()
		return m, func() tea.Msg { return LoggedOutMsg{} }

	case "m":
		// The password-change lock also disables the menu; the guard
		// would bounce every selection anyway.
		if !locked && !m.typingInPage() {
			m.menu.Toggle()
			return m, nil
		}

	case "ctrl+d":
		if !locked {
			return m, m.navigate(nav.PathDashboard)
		}

	case "ctrl+w":
		if !locked {
			return m, m.closeActiveTab()
		}

	case "ctrl+p":
		if !locked {
			m.tabs.TogglePin(m.activeRoutePath())
			return m, nil
		}

	case "ctrl+left":
		if !locked {
			m.moveActiveTab(-1)
			return m, nil
		}

	case "ctrl+right":
		if !locked {
			m.moveActiveTab(+1)
			return m, nil
		}

	case "ctrl+1", "ctrl+2", "ctrl+3", "ctrl+4", "ctrl+5":
		if !locked {
			idx := int(msg.String()[5]-'0') - 1
			open := m.tabs.Tabs()
			if idx < len(open) {
				return m, m.navigate(visitPath(open[idx]))
			}
			return m, nil
		}
	}

	return m, m.cache.updateActive(m.activeRoutePath(), msg)
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "m":
		m.menu.Close()
		return m, nil
	case "left":
		m.menu.PrevModule()
		return m, nil
	case "right":
		m.menu.NextModule()
		return m, nil
	case "down":
		m.menu.NextItem()
		return m, nil
	case "up":
		m.menu.PrevItem()
		return m, nil
	case "enter":
		route, _, ok := m.menu.Selected()
		if !ok {
			return m, nil
		}
		m.menu.Close()
		// Denied selections still pass through the guard so the
		// advisory and dashboard redirect follow one code path.
		return m, m.navigate(route.Path)
	}
	return m, nil
}

// closeActiveTab closes the tab owning the current route and moves
// focus per the left, right, dashboard policy.
func (m *Model) closeActiveTab() tea.Cmd {
	routePath := m.activeRoutePath()
	before := m.tabs.Tabs()
	if !m.tabs.Close(routePath) {
		return nil
	}
	next := tabs.NextFocus(before, routePath, m.current)
	if next == "" {
		return nil
	}
	return m.navigate(next)
}

// moveActiveTab shifts the active tab one slot left or right.
func (m *Model) moveActiveTab(delta int) {
	open := m.tabs.Tabs()
	from := -1
	for i, tab := range open {
		if tab.Path == m.activeRoutePath() {
			from = i
			break
		}
	}
	if from < 0 {
		return
	}
	to := from + delta
	if to < 0 || to >= len(open) {
		return
	}
	m.tabs.Move(from, to)
}

// typingInPage reports whether the active page is capturing plain
// characters (forms), in which case bare letter shortcuts stay off.
func (m *Model) typingInPage() bool {
	return m.current == nav.PathPasswordChange
}

// visitPath prefers a tab's last visited sub-path over its root.
func visitPath(t tabs.Tab) string {
	if t.LastPath != "" {
		return t.LastPath
	}
	return t.Path
}
