// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// User is the authenticated operator profile returned by the me/ endpoint.
// The navigation core treats it as read-only.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`

	// IsSuperuser bypasses every access check.
	IsSuperuser bool `json:"is_superuser"`

	// Coarse module-access flags. Authoritative only when AllowedRoutes
	// is empty.
	AcessoAtendimento   bool `json:"acesso_atendimento"`
	AcessoAgendamento   bool `json:"acesso_agendamento"`
	AcessoCadastros     bool `json:"acesso_cadastros"`
	AcessoConfiguracoes bool `json:"acesso_configuracoes"`
	AcessoFaturamento   bool `json:"acesso_faturamento"`

	// AllowedRoutes is the fine-grained privilege assignment: exact path
	// prefixes individually granted to the operator. When non-empty it is
	// authoritative over the coarse flags for route-level decisions.
	AllowedRoutes []string `json:"allowed_routes"`

	// ForcePasswordChange locks navigation to the password change route
	// until the operator sets a new password.
	ForcePasswordChange bool `json:"force_password_change"`
}
