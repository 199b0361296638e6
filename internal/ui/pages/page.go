// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// page.go - Page contract and route-to-page factory.
package pages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/nav"
	"github.com/theclinic/clinic-tui/internal/ui/styles"
)

// Page is one mounted route view. Pages follow the bubbletea model
// shape but return the concrete interface so the workspace can keep a
// map of them without type assertions.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Page, tea.Cmd)
	View() string
	SetSize(width, height int)

	// Path is the canonical route path the page was mounted for.
	Path() string
}

// Deps carries the collaborators pages need. The workspace builds one
// and shares it across every mounted page.
type Deps struct {
	Client *api.Client
	Theme  *styles.Theme
}

// PasswordChangedMsg is emitted by the password-change page after the
// server accepts the new password. The workspace reacts by refreshing
// the profile and leaving the locked route.
type PasswordChangedMsg struct{}

// New mounts the page model for a resolved route at the given
// (possibly deeper) visit path.
func New(route nav.Route, path string, deps Deps) Page {
	switch route.Path {
	case nav.PathDashboard:
		return newDashboard(deps)
	case nav.PathPasswordChange:
		return newPasswordChange(deps)
	}
	if spec, ok := resourceSpecs[route.Path]; ok {
		return newResource(route, spec, deps)
	}
	return newPlaceholder(route, path, deps)
}
