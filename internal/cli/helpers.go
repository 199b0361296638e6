// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared wiring for CLI command handlers.
package cli

import (
	"fmt"
	"time"

	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/auth"
	"github.com/theclinic/clinic-tui/internal/config"
	"github.com/theclinic/clinic-tui/internal/store"
)

// newAuthStore builds the API client and credential scopes the way the
// TUI does, so CLI subcommands and the interface share one session.
// The session scope is memory-backed and therefore empty here; only
// credentials saved with --remember survive into a CLI invocation.
func newAuthStore(cfg config.Config) (*auth.Store, error) {
	durable, err := store.NewFileScope(config.StateDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open state directory: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second)

	return auth.NewStore(client, durable, store.NewMemoryScope()), nil
}
