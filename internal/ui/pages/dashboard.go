// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// dashboard.go - Landing page shown to every authenticated operator.
package pages

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theclinic/clinic-tui/internal/nav"
)

type dashboardPage struct {
	deps  Deps
	width int
}

func newDashboard(deps Deps) Page {
	return &dashboardPage{deps: deps}
}

func (p *dashboardPage) Path() string  { return nav.PathDashboard }
func (p *dashboardPage) Init() tea.Cmd { return nil }

func (p *dashboardPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	return p, nil
}

func (p *dashboardPage) SetSize(width, _ int) {
	p.width = width
}

func (p *dashboardPage) View() string {
	theme := p.deps.Theme
	var b strings.Builder

	b.WriteString(theme.PageTitle.Render("Início"))
	b.WriteString("\n")
	b.WriteString(theme.FormLabel.Render("Use o menu para abrir uma funcionalidade."))
	b.WriteString("\n\n")
	b.WriteString(theme.FormHint.Render("m menu · ctrl+1..5 abas · ctrl+w fecha aba · ctrl+q sai"))
	return b.String()
}
