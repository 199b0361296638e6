// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the clinic TUI.
//
// Configuration is TOML at ~/.theclinic/config.toml with built-in
// defaults and environment variable overrides:
//
//   - CLINIC_CONFIG_DIR overrides the dot directory
//   - CLINIC_API_URL overrides the backend base URL
//
// A fsnotify-based watcher reloads the file live so operators can point
// the client at a different backend without restarting.
package config
