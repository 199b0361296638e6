// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the process-wide authentication state.
//
// The session store is a state machine over Unauthenticated, Restoring,
// Authenticated and Expired. It performs the credential exchange, the
// silent restore on startup, logout, and the best-effort privilege catalog
// sync for superusers. No other code mutates the current user or the
// bearer credential.
package auth
