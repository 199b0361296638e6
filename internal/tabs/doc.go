// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tabs maintains the ordered set of open page tabs for the current
// operator.
//
// A tab is a shortcut to a previously visited, access-granted route. The
// set is bounded by MaxTabs, ordered (the order is user-controlled), and
// the pinned subset survives across sessions through the persisted-state
// layer, keyed by username. Access control is not enforced here: the route
// guard gates every navigation at render time, so a tab whose target was
// revoked after creation simply redirects away when clicked.
package tabs
