// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection helpers.
package cli

import (
	"os"

	"golang.org/x/term"
)

// IsStdinTerminal reports whether stdin is an interactive terminal.
// Password prompts refuse to run when it is not.
func IsStdinTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTerminal reports whether stdout is an interactive terminal.
func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
