// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package guard

import (
	"github.com/theclinic/clinic-tui/internal/access"
	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/auth"
	"github.com/theclinic/clinic-tui/internal/nav"
)

// Decision is the outcome of guarding one navigation.
type Decision int

const (
	// DecisionRender: show the requested content unchanged.
	DecisionRender Decision = iota

	// DecisionLoading: credential restore is in flight; show a loading
	// indicator, no redirect.
	DecisionLoading

	// DecisionRedirect: navigate to Result.RedirectTo instead, using
	// replace semantics so the blocked path leaves no history entry.
	DecisionRedirect
)

// MsgAccessDenied is the advisory shown when an authenticated operator
// hits a route outside their privileges.
const MsgAccessDenied = "Você não tem acesso a esta funcionalidade."

// Result describes what the router should do with a navigation.
type Result struct {
	Decision Decision

	// Path is the normalized requested path, valid for DecisionRender.
	Path string

	// RedirectTo is the target for DecisionRedirect.
	RedirectTo string

	// ReturnTo carries the originally requested location into the login
	// redirect for post-login return.
	ReturnTo string

	// Warning is a one-time advisory to surface, empty when silent.
	Warning string
}

// =============================================================================
// GUARD
// =============================================================================

// Guard evaluates navigations. It keeps only the last denied path for
// warning deduplication; it is not safe for concurrent use, matching the
// single event loop it runs on.
type Guard struct {
	lastDenied string
}

// New creates a guard.
func New() *Guard {
	return &Guard{}
}

// Evaluate gates one navigation. Checks run in strict order, first match
// wins:
//
//  1. Restoring session: loading indicator.
//  2. No authenticated user: redirect to login, carrying the requested
//     location.
//  3. Forced password change locks every other route.
//  4. The password-change path itself: a stale visit without the flag
//     set bounces to the dashboard; with it set the page renders,
//     bypassing the privilege check (the path is outside the catalog, so
//     no route list grants it).
//  5. Access denial redirects to the dashboard with a one-time advisory.
//  6. Otherwise render.
func (g *Guard) Evaluate(state auth.State, user *api.User, path string) Result {
	if state == auth.StateRestoring {
		return Result{Decision: DecisionLoading}
	}
	if user == nil || state != auth.StateAuthenticated {
		return Result{
			Decision:   DecisionRedirect,
			RedirectTo: nav.PathLogin,
			ReturnTo:   nav.Normalize(path),
		}
	}

	p := nav.Normalize(path)

	if user.ForcePasswordChange && p != nav.PathPasswordChange {
		return Result{Decision: DecisionRedirect, RedirectTo: nav.PathPasswordChange}
	}
	if p == nav.PathPasswordChange {
		if !user.ForcePasswordChange {
			return Result{Decision: DecisionRedirect, RedirectTo: nav.PathDashboard}
		}
		// Not a catalog route, so no privilege list ever grants it; it
		// must render here or the lock and the denial redirect ping-pong.
		return Result{Decision: DecisionRender, Path: p}
	}

	if !user.IsSuperuser && !access.CanAccessRoute(user, p) {
		warning := ""
		if g.lastDenied != p {
			warning = MsgAccessDenied
			g.lastDenied = p
		}
		return Result{
			Decision:   DecisionRedirect,
			RedirectTo: nav.PathDashboard,
			Warning:    warning,
		}
	}

	return Result{Decision: DecisionRender, Path: p}
}

// Reset clears the denial memory, called when the session ends so the
// next operator starts clean.
func (g *Guard) Reset() {
	g.lastDenied = ""
}
