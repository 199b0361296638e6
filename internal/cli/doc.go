// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements argument parsing and the non-interactive
// subcommands of the clinic binary (login, logout, status, config).
//
// Without a subcommand the binary starts the terminal interface; the
// subcommands here exist for scripting and for diagnosing a session
// without entering the TUI. All user-facing output is Portuguese, the
// language of the clinic staff operating the program.
package cli
