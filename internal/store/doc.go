// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the two persisted-state scopes of the clinic TUI.
//
// The durable scope survives process restarts and backs the "remember me"
// credential; it is a file-per-key directory under the application dot
// directory, written atomically with 0600 permissions. The session scope
// lives for the lifetime of the process and backs the session-only
// credential and the per-operator pinned tabs.
//
// Persisted UI convenience data must never block usability: readers treat
// a missing or unreadable key as absent, never as a fatal error.
package store
