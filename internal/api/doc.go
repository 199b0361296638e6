// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the clinic management backend.
//
// The client attaches the bearer credential to every request, retries
// transient failures with exponential backoff, and exposes the three
// logical endpoints the navigation core consumes: credential exchange,
// current-user profile, and the fire-and-forget privilege catalog sync.
//
// A single unauthorized observer can be registered on the response
// pipeline; it fires at most once per arm cycle when any response carries
// an authorization-failure status, so individual callers never need
// bespoke 401 handling.
package api
