// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import (
	"sort"
	"strings"
)

// =============================================================================
// WELL-KNOWN PATHS
// =============================================================================

// Paths with special navigation behavior. None of them are ever represented
// as a tab.
const (
	// PathLogin is the public entry route.
	PathLogin = "/"

	// PathDashboard is the universal landing page, reachable by every
	// authenticated user.
	PathDashboard = "/dashboard"

	// PathPasswordChange is the forced password change route. While
	// User.ForcePasswordChange is set it is the only reachable route.
	PathPasswordChange = "/trocasenhaobrigatoria"
)

// =============================================================================
// CATALOG TYPES
// =============================================================================

// Route is one navigable destination derived from the menu catalog.
type Route struct {
	// Path is the canonical route path. Unique within the catalog.
	Path string

	// Title is the human label shown on tabs and menu entries.
	Title string

	// Icon is a stable identifier resolved to a glyph by the UI layer.
	Icon string
}

// Matches reports whether p is the route's path or a descendant of it.
// p must already be normalized.
func (r Route) Matches(p string) bool {
	return p == r.Path || strings.HasPrefix(p, r.Path+"/")
}

// Module is a named group of related routes sharing one coarse access flag.
type Module struct {
	Key    string
	Label  string
	Icon   string
	Routes []Route
}

// =============================================================================
// DECLARATIVE MENU CATALOG
// =============================================================================

// Dashboard is the landing page entry. It lives outside the modules because
// it is visible to every authenticated user and never becomes a tab.
var Dashboard = Route{Path: PathDashboard, Title: "Dashboard", Icon: "layout-dashboard"}

// modules is the declarative menu catalog. Order is menu display order.
var modules = []Module{
	{
		Key:   "atendimento",
		Label: "Atendimento",
		Icon:  "stethoscope",
		Routes: []Route{
			{Path: "/prontuarios", Title: "Prontuários", Icon: "clipboard-list"},
			{Path: "/triagem", Title: "Triagem", Icon: "bell"},
		},
	},
	{
		Key:   "agenda",
		Label: "Agenda",
		Icon:  "calendar-days",
		Routes: []Route{
			{Path: "/recepcao", Title: "Recepção", Icon: "users"},
			{Path: "/agenda/marcar", Title: "Marcar Consulta", Icon: "plus"},
			{Path: "/agenda/configurar", Title: "Configurar Agenda", Icon: "calendar-days"},
			{Path: "/agenda/criar", Title: "Criar Agenda", Icon: "calendar-clock"},
			{Path: "/agenda/bloqueios", Title: "Bloqueios e Feriados", Icon: "calendar-x"},
		},
	},
	{
		Key:   "sistema",
		Label: "Sistema",
		Icon:  "settings",
		Routes: []Route{
			{Path: "/pacientes", Title: "Pacientes", Icon: "users"},
			{Path: "/operadores", Title: "Operadores", Icon: "shield-check"},
			{Path: "/profissionais", Title: "Profissionais", Icon: "briefcase"},
			{Path: "/especialidades", Title: "Especialidades", Icon: "heart"},
			{Path: "/convenios", Title: "Convênios", Icon: "shield-check"},
			{Path: "/clinica", Title: "Dados da Clínica", Icon: "building"},
		},
	},
	{
		Key:   "configuracoes",
		Label: "Configurações",
		Icon:  "settings",
		Routes: []Route{
			{Path: "/configuracoes", Title: "Configurações", Icon: "settings"},
		},
	},
}

// flat is the flattened route table, precomputed once and sorted by path
// length descending so that longest-prefix resolution is deterministic
// (a tab owning /agenda/marcar wins over one owning /agenda).
var flat = flatten()

func flatten() []Route {
	var routes []Route
	for _, m := range modules {
		routes = append(routes, m.Routes...)
	}
	sort.SliceStable(routes, func(i, j int) bool {
		return len(routes[i].Path) > len(routes[j].Path)
	})
	return routes
}

// =============================================================================
// LOOKUPS
// =============================================================================

// Modules returns the menu catalog. The returned slice is shared; callers
// must not mutate it.
func Modules() []Module {
	return modules
}

// Routes returns the flattened route table sorted longest path first.
// The returned slice is shared; callers must not mutate it.
func Routes() []Route {
	return flat
}

// Resolve maps a normalized path to the route that owns it, longest prefix
// first. The boolean is false when no catalog route matches.
func Resolve(path string) (Route, bool) {
	for _, r := range flat {
		if r.Matches(path) {
			return r, true
		}
	}
	return Route{}, false
}

// Normalize lowercases a path and strips trailing slashes. Every path
// comparison in the access policy, guard and tab manager operates on
// normalized paths.
func Normalize(path string) string {
	p := strings.ToLower(strings.TrimSpace(path))
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		return PathLogin
	}
	return p
}
