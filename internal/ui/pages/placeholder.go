// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// placeholder.go - Static page for routes without a list view.
package pages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theclinic/clinic-tui/internal/nav"
)

// placeholderPage stands in for form-driven routes whose workflow
// lives server side. It keeps the route mounted so tab focus, history
// and access checks behave exactly like any other page.
type placeholderPage struct {
	deps      Deps
	route     nav.Route
	visitPath string
	width     int
}

func newPlaceholder(route nav.Route, visitPath string, deps Deps) Page {
	return &placeholderPage{deps: deps, route: route, visitPath: visitPath}
}

func (p *placeholderPage) Path() string  { return p.route.Path }
func (p *placeholderPage) Init() tea.Cmd { return nil }

func (p *placeholderPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	return p, nil
}

func (p *placeholderPage) SetSize(width, _ int) {
	p.width = width
}

func (p *placeholderPage) View() string {
	theme := p.deps.Theme
	out := theme.PageTitle.Render(p.route.Title) + "\n"
	out += theme.FormLabel.Render("Funcionalidade disponível no sistema web da clínica.")
	if p.visitPath != p.route.Path {
		out += "\n" + theme.FormHint.Render(p.visitPath)
	}
	return out
}
