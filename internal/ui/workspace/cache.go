// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cache.go - Live page cache keyed by catalog route.
package workspace

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theclinic/clinic-tui/internal/nav"
	"github.com/theclinic/clinic-tui/internal/ui/pages"
)

// viewCache keeps mounted page models alive across tab switches. Only
// the page matching the current route is rendered; the others stay
// mounted so form fields, cursors and scroll positions survive.
type viewCache struct {
	deps   pages.Deps
	mounts map[string]pages.Page

	width  int
	height int
}

func newViewCache(deps pages.Deps) *viewCache {
	return &viewCache{deps: deps, mounts: make(map[string]pages.Page)}
}

// mount returns the live page for a route, creating it on first visit.
// The returned command is the page's Init and is nil when the page was
// already mounted.
func (c *viewCache) mount(route nav.Route, visitPath string) (pages.Page, tea.Cmd) {
	if page, ok := c.mounts[route.Path]; ok {
		return page, nil
	}
	page := pages.New(route, visitPath, c.deps)
	page.SetSize(c.width, c.height)
	c.mounts[route.Path] = page
	return page, page.Init()
}

// get returns the mounted page for a route path, if any.
func (c *viewCache) get(routePath string) (pages.Page, bool) {
	page, ok := c.mounts[routePath]
	return page, ok
}

// prune drops every mounted page whose route is not in keep.
func (c *viewCache) prune(keep map[string]struct{}) {
	for path := range c.mounts {
		if _, ok := keep[path]; !ok {
			delete(c.mounts, path)
		}
	}
}

// reset drops every mounted page. Used on logout and session expiry so
// no page state leaks across users.
func (c *viewCache) reset() {
	c.mounts = make(map[string]pages.Page)
}

// len reports how many pages are mounted.
func (c *viewCache) len() int {
	return len(c.mounts)
}

// setSize propagates terminal size to every mounted page.
func (c *viewCache) setSize(width, height int) {
	c.width = width
	c.height = height
	for _, page := range c.mounts {
		page.SetSize(width, height)
	}
}

// updateActive routes a message to the page owning routePath only.
func (c *viewCache) updateActive(routePath string, msg tea.Msg) tea.Cmd {
	page, ok := c.mounts[routePath]
	if !ok {
		return nil
	}
	next, cmd := page.Update(msg)
	c.mounts[routePath] = next
	return cmd
}

// broadcast delivers a message to every mounted page. Used for async
// results (fetches, timers) whose target page may not be active when
// the answer arrives.
func (c *viewCache) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for path, page := range c.mounts {
		next, cmd := page.Update(msg)
		c.mounts[path] = next
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}
