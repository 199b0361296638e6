// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login_cmd.go - Login/logout command implementations for clinic.
//
// Command: login [usuário]
// Short:   Authenticate against the clinic server
//
// Examples:
//   clinic login                  Prompt for username and password
//   clinic login maria            Prompt for password only
//   clinic login maria --remember Keep the session across executions
//
// Without --remember the token is kept in memory only, which for a CLI
// invocation means it is gone when the process exits; the flag is what
// makes this command useful outside the TUI.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/theclinic/clinic-tui/internal/config"
)

// loginTimeout bounds the token exchange plus profile fetch.
const loginTimeout = 30 * time.Second

// HandleLogin authenticates and, with --remember, persists the session.
func HandleLogin(args Args) error {
	if !IsStdinTerminal() {
		return errors.New("login exige um terminal interativo")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", dimStyle.Render("aviso: configuração inválida, usando padrões"))
	}

	authStore, err := newAuthStore(cfg)
	if err != nil {
		return err
	}

	username := args.Username
	if username == "" {
		fmt.Print("Usuário: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return errors.New("usuário não informado")
	}

	fmt.Print("Senha: ")
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
	defer cancel()

	result := authStore.Login(ctx, username, string(passBytes), args.Remember)
	if !result.OK {
		return errors.New(result.Message)
	}

	user := authStore.User()
	fmt.Println(successStyle.Render(fmt.Sprintf("Sessão iniciada como %s.", user.Username)))
	if !args.Remember {
		fmt.Println(dimStyle.Render("Sessão não gravada; use --remember para manter entre execuções."))
	}
	if user.ForcePasswordChange {
		fmt.Println(errorStyle.Render("Troca de senha obrigatória: entre na interface para definir uma nova senha."))
	}
	return nil
}

// HandleLogout discards any persisted session.
func HandleLogout(args Args) error {
	cfg, _ := config.Load()
	authStore, err := newAuthStore(cfg)
	if err != nil {
		return err
	}
	authStore.Logout()
	if !args.Quiet {
		fmt.Println(successStyle.Render("Sessão encerrada."))
	}
	return nil
}
