// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"strings"

	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/nav"
)

// coarseModuleFlags maps a module key to its coarse access flag. Used only
// when the operator has no fine-grained route list.
func coarseModuleFlag(u *api.User, key string) bool {
	switch key {
	case "agenda":
		return u.AcessoAgendamento
	case "atendimento":
		return u.AcessoAtendimento
	case "sistema":
		return u.AcessoCadastros
	default:
		return false
	}
}

// CanAccessRoute reports whether the operator may reach path. The path must
// be normalized (lowercase, no trailing slash) before the call.
//
// Superusers always pass. The dashboard is the universal landing page and
// always passes. With a fine-grained route list, access requires the path
// to equal a granted prefix or be a /-delimited descendant of one. Under
// the coarse regime only the /configuracoes subtree is decidable by a flag;
// every other non-dashboard path is denied by default.
func CanAccessRoute(u *api.User, path string) bool {
	if u == nil {
		return false
	}
	if u.IsSuperuser {
		return true
	}
	if path == nav.PathDashboard {
		return true
	}

	if len(u.AllowedRoutes) > 0 {
		for _, allowed := range u.AllowedRoutes {
			allowed = nav.Normalize(allowed)
			if path == allowed || strings.HasPrefix(path, allowed+"/") {
				return true
			}
		}
		return false
	}

	if path == "/configuracoes" || strings.HasPrefix(path, "/configuracoes/") {
		return u.AcessoConfiguracoes
	}
	return false
}

// CanAccessModule reports whether a navigation module is visible to the
// operator. With a fine-grained route list the module is visible when at
// least one of its routes passes CanAccessRoute; otherwise one coarse flag
// decides the whole module.
func CanAccessModule(u *api.User, key string, routes []nav.Route) bool {
	if u == nil {
		return false
	}
	if u.IsSuperuser {
		return true
	}

	if len(u.AllowedRoutes) > 0 {
		for _, r := range routes {
			if CanAccessRoute(u, nav.Normalize(r.Path)) {
				return true
			}
		}
		return false
	}
	return coarseModuleFlag(u, key)
}
