// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tabs

import (
	"encoding/json"
	"sync"

	"github.com/theclinic/clinic-tui/internal/nav"
	"github.com/theclinic/clinic-tui/internal/store"
)

// MaxTabs is the open-tab capacity. The limit is enforced by rejection:
// the operator is warned and the set is left unchanged, never evicted.
const MaxTabs = 5

// Tab is one user-visible route shortcut. Identity is the canonical route
// path; at most one tab exists per path.
type Tab struct {
	// Path is the canonical path of the owning route definition.
	Path string

	// Title and Icon come from the route definition. Icon is re-derived
	// from the catalog on hydration, never serialized.
	Title string
	Icon  string

	// Pinned tabs survive across sessions.
	Pinned bool

	// LastPath is the last visited sub-path under this tab, used by the
	// view cache to restore the exact page the operator left.
	LastPath string
}

// persistedTab is the serialized form of a pinned tab.
type persistedTab struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// ObserveResult describes the outcome of observing a navigation.
type ObserveResult int

const (
	// ObserveIgnored: the path is always-open (login, password change,
	// dashboard) or matches no route definition.
	ObserveIgnored ObserveResult = iota

	// ObserveOpened: a new tab was appended.
	ObserveOpened

	// ObserveExisting: a tab for the resolved route already exists. Order
	// is untouched; only the last visited sub-path is refreshed.
	ObserveExisting

	// ObserveRejected: the set is at capacity and the new tab was
	// refused. Callers surface a capacity warning.
	ObserveRejected
)

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the tab set of the current operator. All mutation happens
// through its methods; every mutation rewrites the persisted pinned subset.
type Manager struct {
	mu       sync.Mutex
	tabs     []Tab
	username string
	scope    store.Scope
}

// NewManager creates a manager persisting to the given session scope.
func NewManager(scope store.Scope) *Manager {
	return &Manager{scope: scope}
}

// Start hydrates the tab set for an operator session. Any in-memory tabs
// from a previous identity are dropped first so tabs never leak between
// operators. Persisted entries whose path no longer matches the catalog,
// or that point at the dashboard, are dropped silently; an unparsable
// payload resets the set to empty.
func (m *Manager) Start(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.username = username
	m.tabs = nil

	raw, ok := m.scope.Get(store.TabsKey(username))
	if !ok || raw == "" {
		return
	}

	var persisted []persistedTab
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return
	}

	for _, p := range persisted {
		path := nav.Normalize(p.Path)
		if path == nav.PathDashboard {
			continue
		}
		def, found := nav.Resolve(path)
		if !found {
			continue
		}
		if m.indexOf(def.Path) >= 0 || len(m.tabs) >= MaxTabs {
			continue
		}
		title := p.Title
		if title == "" {
			title = def.Title
		}
		m.tabs = append(m.tabs, Tab{
			Path:     def.Path,
			Title:    title,
			Icon:     def.Icon,
			Pinned:   true,
			LastPath: path,
		})
	}
}

// Reset clears the in-memory tab set, called on logout or operator switch.
// The persisted pinned subset of the previous operator is left in place
// for their next session.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.username = ""
	m.tabs = nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Observe records a navigation to path. Called on every route render after
// the guard has allowed it, so a tab is never created for a path the
// operator cannot access.
func (m *Manager) Observe(path string) ObserveResult {
	path = nav.Normalize(path)
	switch path {
	case nav.PathLogin, nav.PathPasswordChange, nav.PathDashboard:
		return ObserveIgnored
	}

	def, found := nav.Resolve(path)
	if !found {
		return ObserveIgnored
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(def.Path); i >= 0 {
		m.tabs[i].LastPath = path
		return ObserveExisting
	}
	if len(m.tabs) >= MaxTabs {
		return ObserveRejected
	}

	m.tabs = append(m.tabs, Tab{
		Path:     def.Path,
		Title:    def.Title,
		Icon:     def.Icon,
		LastPath: path,
	})
	m.persistLocked()
	return ObserveOpened
}

// Close removes the tab with the given canonical path, pinned or not.
// Redirecting focus away from a closed active tab is the caller's job;
// see NextFocus.
func (m *Manager) Close(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(path)
	if i < 0 {
		return false
	}
	m.tabs = append(m.tabs[:i], m.tabs[i+1:]...)
	m.persistLocked()
	return true
}

// TogglePin flips the pinned flag of the tab at path. Order is unchanged.
func (m *Manager) TogglePin(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(path)
	if i < 0 {
		return false
	}
	m.tabs[i].Pinned = !m.tabs[i].Pinned
	m.persistLocked()
	return true
}

// Move relocates the tab at fromIndex to toIndex. Equal indices are a
// no-op. Indices come from the tab bar, which only produces in-range
// values; out-of-range indices are quietly refused rather than panicking.
func (m *Manager) Move(fromIndex, toIndex int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fromIndex == toIndex ||
		fromIndex < 0 || fromIndex >= len(m.tabs) ||
		toIndex < 0 || toIndex >= len(m.tabs) {
		return
	}

	moved := m.tabs[fromIndex]
	m.tabs = append(m.tabs[:fromIndex], m.tabs[fromIndex+1:]...)

	rest := make([]Tab, 0, len(m.tabs)+1)
	rest = append(rest, m.tabs[:toIndex]...)
	rest = append(rest, moved)
	rest = append(rest, m.tabs[toIndex:]...)
	m.tabs = rest
	m.persistLocked()
}

// Tabs returns a snapshot of the ordered tab set.
func (m *Manager) Tabs() []Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Tab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

// Len returns the number of open tabs.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tabs)
}

// indexOf returns the position of the tab with the given canonical path,
// or -1. Caller holds the lock.
func (m *Manager) indexOf(path string) int {
	for i, t := range m.tabs {
		if t.Path == path {
			return i
		}
	}
	return -1
}

// persistLocked rewrites the pinned subset for the current operator.
// Caller holds the lock. Icons are not serialized; they are re-derived
// from the catalog on hydration.
func (m *Manager) persistLocked() {
	if m.username == "" || m.scope == nil {
		return
	}

	persisted := make([]persistedTab, 0, len(m.tabs))
	for _, t := range m.tabs {
		if t.Pinned {
			persisted = append(persisted, persistedTab{Path: t.Path, Title: t.Title})
		}
	}

	data, err := json.Marshal(persisted)
	if err != nil {
		return
	}
	m.scope.Set(store.TabsKey(m.username), string(data))
}

// =============================================================================
// FOCUS POLICY
// =============================================================================

// NextFocus decides where focus goes after closing the active tab: the tab
// immediately to the left, else immediately to the right, else the
// dashboard. tabsBefore is the ordered set before removal. Returns the
// path to navigate to, or "" when the closed tab was not the active one.
func NextFocus(tabsBefore []Tab, closedPath, activePath string) string {
	closedIdx := -1
	for i, t := range tabsBefore {
		if t.Path == closedPath {
			closedIdx = i
			break
		}
	}
	if closedIdx < 0 {
		return ""
	}

	active := tabsBefore[closedIdx].Path == activePath ||
		tabsBefore[closedIdx].LastPath == activePath
	if !active {
		return ""
	}

	if closedIdx > 0 {
		return visitPath(tabsBefore[closedIdx-1])
	}
	if closedIdx+1 < len(tabsBefore) {
		return visitPath(tabsBefore[closedIdx+1])
	}
	return nav.PathDashboard
}

// visitPath prefers the last visited sub-path so focus returns to the
// exact page the operator left.
func visitPath(t Tab) string {
	if t.LastPath != "" {
		return t.LastPath
	}
	return t.Path
}
