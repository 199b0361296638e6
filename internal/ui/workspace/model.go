// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - Workspace state and navigation.
package workspace

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theclinic/clinic-tui/internal/auth"
	"github.com/theclinic/clinic-tui/internal/guard"
	"github.com/theclinic/clinic-tui/internal/nav"
	"github.com/theclinic/clinic-tui/internal/store"
	"github.com/theclinic/clinic-tui/internal/tabs"
	"github.com/theclinic/clinic-tui/internal/ui/components"
	"github.com/theclinic/clinic-tui/internal/ui/pages"
)

// MsgTabLimit is the advisory shown when opening a sixth tab.
const MsgTabLimit = "Limite de abas atingido. Feche uma aba para abrir outra."

// LoggedOutMsg signals the root model that the operator logged out.
type LoggedOutMsg struct{}

// Model is the authenticated workspace.
type Model struct {
	deps pages.Deps
	auth *auth.Store
	tabs *tabs.Manager
	rg   *guard.Guard

	menu      *components.Menu
	tabBar    *components.TabBar
	statusBar *components.StatusBar
	notices   *components.NoticeManager
	cache     *viewCache

	// current is the active normalized visit path.
	current string

	width  int
	height int
}

// New wires the workspace over the shared session store. The tab
// manager persists into the session scope so pinned tabs survive a
// relaunch of the workspace for the same user.
func New(deps pages.Deps, authStore *auth.Store, sessionScope store.Scope) *Model {
	theme := deps.Theme
	return &Model{
		deps:      deps,
		auth:      authStore,
		tabs:      tabs.NewManager(sessionScope),
		rg:        guard.New(),
		menu:      components.NewMenu(theme, authStore.User()),
		tabBar:    components.NewTabBar(theme),
		statusBar: components.NewStatusBar(theme),
		notices:   components.NewNoticeManager(),
		cache:     newViewCache(deps),
	}
}

// Start hydrates the tab set for the authenticated user and navigates
// to the initial path (the post-login return location or dashboard).
func (m *Model) Start(initialPath string) tea.Cmd {
	user := m.auth.User()
	if user == nil {
		return nil
	}
	m.menu.SetUser(user)
	m.tabs.Start(user.Username)
	m.rg.Reset()
	if initialPath == "" || initialPath == nav.PathLogin {
		initialPath = nav.PathDashboard
	}
	return m.navigate(initialPath)
}

// Shutdown clears per-user state on logout or expiry.
func (m *Model) Shutdown() {
	m.tabs.Reset()
	m.rg.Reset()
	m.cache.reset()
	m.notices.Clear()
	m.current = ""
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// navigate runs the guard over a requested path and mounts whatever it
// decides to show. Redirect chains (stale password route → dashboard)
// terminate because redirect targets always render.
func (m *Model) navigate(path string) tea.Cmd {
	result := m.rg.Evaluate(m.auth.State(), m.auth.User(), path)

	var cmds []tea.Cmd
	if result.Warning != "" {
		m.notices.Warn(result.Warning)
		cmds = append(cmds, components.NoticeTickCmd())
	}

	switch result.Decision {
	case guard.DecisionLoading:
		return tea.Batch(cmds...)

	case guard.DecisionRedirect:
		if result.RedirectTo == nav.PathLogin {
			// Expiry path: the root model owns the swap to the login
			// screen, nothing to mount here.
			return tea.Batch(cmds...)
		}
		cmds = append(cmds, m.navigate(result.RedirectTo))
		return tea.Batch(cmds...)
	}

	m.current = result.Path
	if m.tabs.Observe(result.Path) == tabs.ObserveRejected {
		m.notices.Warn(MsgTabLimit)
		cmds = append(cmds, components.NoticeTickCmd())
	}

	route, ok := routeFor(result.Path)
	if !ok {
		// Guard passed a path the catalog cannot mount; fall back to
		// the dashboard rather than render nothing.
		route = nav.Dashboard
		m.current = nav.PathDashboard
	}
	_, initCmd := m.cache.mount(route, result.Path)
	if initCmd != nil {
		cmds = append(cmds, initCmd)
	}
	m.cache.prune(m.cachedRoutes())
	return tea.Batch(cmds...)
}

// cachedRoutes computes which route models stay mounted: the current
// route plus every open tab. While the forced password-change lock is
// active the cache pins to the current route alone.
func (m *Model) cachedRoutes() map[string]struct{} {
	keep := make(map[string]struct{})
	if route, ok := routeFor(m.current); ok {
		keep[route.Path] = struct{}{}
	}

	user := m.auth.User()
	if user != nil && user.ForcePasswordChange {
		return keep
	}
	for _, tab := range m.tabs.Tabs() {
		keep[tab.Path] = struct{}{}
	}
	return keep
}

// CurrentPath returns the active visit path, used as the post-login
// return location after a mid-session expiry.
func (m *Model) CurrentPath() string {
	return m.current
}

// activeRoutePath returns the catalog route owning the current path.
func (m *Model) activeRoutePath() string {
	if route, ok := routeFor(m.current); ok {
		return route.Path
	}
	return ""
}

// routeFor maps a normalized path to its owning route, covering the
// two well-known paths that live outside the module catalog.
func routeFor(path string) (nav.Route, bool) {
	switch path {
	case nav.PathDashboard:
		return nav.Dashboard, true
	case nav.PathPasswordChange:
		return nav.Route{Path: nav.PathPasswordChange, Title: "Troca de Senha", Icon: "lock"}, true
	}
	return nav.Resolve(path)
}
