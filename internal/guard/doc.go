// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package guard gates every navigation render.
//
// The guard consults the session store and the access policy in a strict
// order and produces a decision: render, show the restore loading state,
// or redirect. It is synchronous, performs no I/O, and is safe to evaluate
// on every render. Denial warnings are deduplicated against the last
// denied path so a re-render of the same denial stays silent while a new
// denied path warns again.
package guard
