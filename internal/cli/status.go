// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for clinic.
//
// Command: status
// Short:   Display server, session and permission status
// Aliases: s
//
// Examples:
//   clinic status                 Show status
//   clinic s                      Show status (short alias)
//   clinic status --json          Status in JSON format
//
// Status Sections:
//   Servidor:   API base URL, reachability
//   Sessão:     Stored credential, operator, forced password change
//   Módulos:    Which navigation modules the operator can open
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/theclinic/clinic-tui/internal/access"
	"github.com/theclinic/clinic-tui/internal/auth"
	"github.com/theclinic/clinic-tui/internal/config"
	"github.com/theclinic/clinic-tui/internal/nav"
)

// statusTimeout bounds the profile validation round trip.
const statusTimeout = 15 * time.Second

// statusReport is the JSON shape of the status command.
type statusReport struct {
	ServerURL     string   `json:"server_url"`
	ConfigPath    string   `json:"config_path"`
	SessionState  string   `json:"session_state"`
	Username      string   `json:"username,omitempty"`
	Superuser     bool     `json:"superuser,omitempty"`
	PasswordReset bool     `json:"password_reset_required,omitempty"`
	Modules       []string `json:"modules,omitempty"`
}

// HandleStatus validates any stored session against the server and
// prints what the operator would see after opening the TUI.
func HandleStatus(args Args) error {
	cfg, cfgErr := config.Load()

	authStore, err := newAuthStore(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()
	authStore.Restore(ctx)

	report := statusReport{
		ServerURL:    cfg.API.BaseURL,
		ConfigPath:   config.Path(),
		SessionState: authStore.State().String(),
	}
	if user := authStore.User(); user != nil {
		report.Username = user.Username
		report.Superuser = user.IsSuperuser
		report.PasswordReset = user.ForcePasswordChange
		for _, mod := range nav.Modules() {
			if access.CanAccessModule(user, mod.Key, mod.Routes) {
				report.Modules = append(report.Modules, mod.Key)
			}
		}
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(titleStyle.Render("clinic - estado do sistema"))

	fmt.Println(sectionStyle.Render("Servidor"))
	fmt.Printf("%s %s\n", labelStyle.Render("URL"), valueStyle.Render(report.ServerURL))
	fmt.Printf("%s %s\n", labelStyle.Render("Configuração"), dimStyle.Render(report.ConfigPath))
	if cfgErr != nil {
		fmt.Printf("%s %s\n", labelStyle.Render(""), errorStyle.Render("configuração inválida, usando padrões"))
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("Sessão"))
	switch authStore.State() {
	case auth.StateAuthenticated:
		fmt.Printf("%s %s\n", labelStyle.Render("Estado"), successStyle.Render("autenticado"))
		fmt.Printf("%s %s\n", labelStyle.Render("Operador"), valueStyle.Render(report.Username))
		if report.Superuser {
			fmt.Printf("%s %s\n", labelStyle.Render("Perfil"), valueStyle.Render("superusuário"))
		}
		if report.PasswordReset {
			fmt.Printf("%s %s\n", labelStyle.Render("Atenção"), errorStyle.Render("troca de senha obrigatória"))
		}
	default:
		fmt.Printf("%s %s\n", labelStyle.Render("Estado"), dimStyle.Render("sem sessão gravada"))
	}

	if len(report.Modules) > 0 {
		fmt.Println()
		fmt.Println(sectionStyle.Render("Módulos"))
		for _, key := range report.Modules {
			fmt.Printf("%s %s\n", labelStyle.Render(""), valueStyle.Render(key))
		}
	}
	return nil
}
