// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package access implements the client-side access policy.
//
// The functions here are pure and deterministic: no state, no I/O, safe to
// call on every render. They mirror the server authorization rules so that
// navigation can be gated before a request is ever made; the server remains
// authoritative.
package access
