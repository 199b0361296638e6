// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for clinic.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   set <key> <value>   Set a configuration value
//   path                Show configuration file path
//
// Configuration Keys:
//   api.base_url        Clinic server API base URL
//   api.timeout_secs    Request timeout in seconds (5-120)
//   ui.theme            Interface theme (auto/dark/light)
//
// Examples:
//   clinic config                          Show current config
//   clinic config show --json              Config in JSON format
//   clinic config set ui.theme dark
//   clinic config set api.base_url https://clinica.example.com/api
//   clinic config path                     Show config file location
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/theclinic/clinic-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "show", "":
		return configShow(args)
	case "set":
		return configSet(args)
	case "path":
		fmt.Println(config.Path())
		return nil
	default:
		return fmt.Errorf("subcomando desconhecido: config %s", args.Subcommand)
	}
}

func configShow(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", dimStyle.Render("aviso: configuração inválida, usando padrões"))
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	fmt.Println(titleStyle.Render("clinic - configuração"))
	fmt.Printf("%s %s\n", labelStyle.Render("api.base_url"), valueStyle.Render(cfg.API.BaseURL))
	fmt.Printf("%s %s\n", labelStyle.Render("api.timeout_secs"), valueStyle.Render(strconv.Itoa(cfg.API.TimeoutSecs)))
	fmt.Printf("%s %s\n", labelStyle.Render("ui.theme"), valueStyle.Render(cfg.UI.Theme))
	fmt.Println()
	fmt.Println(dimStyle.Render(config.Path()))
	return nil
}

func configSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return fmt.Errorf("uso: clinic config set <chave> <valor>")
	}

	cfg, _ := config.Load()
	switch args.ConfigKey {
	case "api.base_url":
		cfg.API.BaseURL = args.ConfigVal
	case "api.timeout_secs":
		secs, err := strconv.Atoi(args.ConfigVal)
		if err != nil {
			return fmt.Errorf("valor inválido para api.timeout_secs: %q", args.ConfigVal)
		}
		cfg.API.TimeoutSecs = secs
	case "ui.theme":
		cfg.UI.Theme = args.ConfigVal
	default:
		return fmt.Errorf("chave desconhecida: %s", args.ConfigKey)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if !args.Quiet {
		fmt.Println(successStyle.Render(fmt.Sprintf("%s = %s", args.ConfigKey, args.ConfigVal)))
	}
	return nil
}
