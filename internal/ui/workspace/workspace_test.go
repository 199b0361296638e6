// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/auth"
	"github.com/theclinic/clinic-tui/internal/guard"
	"github.com/theclinic/clinic-tui/internal/nav"
	"github.com/theclinic/clinic-tui/internal/store"
	"github.com/theclinic/clinic-tui/internal/ui/pages"
	"github.com/theclinic/clinic-tui/internal/ui/styles"
)

// testProfile is the operator the fake backend serves.
type testProfile struct {
	Routes    []string
	ForceSwap bool
}

func newTestWorkspace(t *testing.T, profile testProfile) *Model {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access":"tok"}`))
	})
	mux.HandleFunc("/me/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":                    1,
			"username":              "maria",
			"allowed_routes":        profile.Routes,
			"force_password_change": profile.ForceSwap,
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL)
	session := store.NewMemoryScope()
	authStore := auth.NewStore(client, store.NewMemoryScope(), session)
	result := authStore.Login(context.Background(), "maria", "senha", false)
	if !result.OK {
		t.Fatalf("test login failed: %s", result.Message)
	}

	deps := pages.Deps{Client: client, Theme: styles.NewTheme("dark")}
	return New(deps, authStore, session)
}

var allRoutes = []string{
	"/prontuarios", "/triagem", "/recepcao", "/pacientes", "/convenios",
	"/agenda/marcar", "/agenda/configurar", "/agenda/criar",
}

// =============================================================================
// NAVIGATION AND CACHE TESTS
// =============================================================================

func TestStart_LandsOnDashboard(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: allRoutes})
	m.Start("")

	if m.current != nav.PathDashboard {
		t.Errorf("current = %q, want dashboard", m.current)
	}
	if _, ok := m.cache.get(nav.PathDashboard); !ok {
		t.Error("dashboard page should be mounted")
	}
}

func TestNavigate_CacheIsCurrentPlusTabs(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: allRoutes})
	m.Start("")

	m.navigate("/prontuarios")
	m.navigate("/pacientes")

	if got := m.tabs.Len(); got != 2 {
		t.Fatalf("tabs = %d, want 2", got)
	}
	if m.cache.len() != 2 {
		t.Errorf("cache = %d mounts, want 2 (current + other tab)", m.cache.len())
	}
	if _, ok := m.cache.get(nav.PathDashboard); ok {
		t.Error("dashboard should be pruned once no tab nor current points at it")
	}
	if _, ok := m.cache.get("/prontuarios"); !ok {
		t.Error("inactive tab page should stay mounted")
	}
}

func TestNavigate_SubPathRefreshesTabWithoutRemount(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: allRoutes})
	m.Start("")

	m.navigate("/pacientes")
	first, _ := m.cache.get("/pacientes")
	m.navigate("/pacientes/42")

	if m.tabs.Len() != 1 {
		t.Fatalf("sub-path visit should not open a second tab")
	}
	again, _ := m.cache.get("/pacientes")
	if first != again {
		t.Error("sub-path visit should reuse the mounted page model")
	}
	if m.current != "/pacientes/42" {
		t.Errorf("current = %q", m.current)
	}
}

func TestNavigate_CapacityRejectionWarns(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: allRoutes})
	m.Start("")

	for _, path := range allRoutes[:5] {
		m.navigate(path)
	}
	m.navigate(allRoutes[5])

	if m.tabs.Len() != 5 {
		t.Fatalf("tabs = %d, want capped at 5", m.tabs.Len())
	}
	found := false
	for _, n := range m.notices.Active() {
		if n.Message == MsgTabLimit {
			found = true
		}
	}
	if !found {
		t.Error("capacity rejection should surface the tab-limit notice")
	}
	if m.current != allRoutes[5] {
		t.Errorf("rejected tab still renders: current = %q, want %q", m.current, allRoutes[5])
	}
}

func TestNavigate_DeniedRouteBouncesToDashboard(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: []string{"/pacientes"}})
	m.Start("")

	m.navigate("/operadores")

	if m.current != nav.PathDashboard {
		t.Errorf("denied route should land on dashboard, got %q", m.current)
	}
	found := false
	for _, n := range m.notices.Active() {
		if n.Message == guard.MsgAccessDenied {
			found = true
		}
	}
	if !found {
		t.Error("denial should surface the access advisory")
	}
}

func TestForcedPasswordChange_PinsCacheToLockedRoute(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: allRoutes, ForceSwap: true})
	m.Start("")

	if m.current != nav.PathPasswordChange {
		t.Fatalf("current = %q, want locked route", m.current)
	}

	m.navigate("/pacientes")
	if m.current != nav.PathPasswordChange {
		t.Error("navigation should stay locked to the password route")
	}
	if m.cache.len() != 1 {
		t.Errorf("cache = %d mounts, want pinned to 1", m.cache.len())
	}
}

// =============================================================================
// TAB INTERACTION TESTS
// =============================================================================

func TestCloseActiveTab_FocusGoesLeft(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: allRoutes})
	m.Start("")

	m.navigate("/prontuarios")
	m.navigate("/pacientes")
	m.closeActiveTab()

	if m.current != "/prontuarios" {
		t.Errorf("focus should move to the left neighbor, got %q", m.current)
	}
	if _, ok := m.cache.get("/pacientes"); ok {
		t.Error("closed tab page should be pruned")
	}
}

func TestCloseLastTab_FocusGoesDashboard(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: allRoutes})
	m.Start("")

	m.navigate("/pacientes")
	m.closeActiveTab()

	if m.current != nav.PathDashboard {
		t.Errorf("closing the only tab should land on dashboard, got %q", m.current)
	}
}

func TestLogoutKey_EmitsLoggedOutAndClearsState(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: allRoutes})
	m.Start("")
	m.navigate("/pacientes")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlL})
	if cmd == nil {
		t.Fatal("logout should produce a command")
	}
	if _, ok := cmd().(LoggedOutMsg); !ok {
		t.Error("logout command should emit LoggedOutMsg")
	}
	if m.cache.len() != 0 || m.tabs.Len() != 0 {
		t.Error("logout should clear cache and tabs")
	}
	if m.auth.State() != auth.StateUnauthenticated {
		t.Error("logout should clear the session")
	}
}

func TestView_RendersChrome(t *testing.T) {
	m := newTestWorkspace(t, testProfile{Routes: allRoutes})
	m.Start("")
	m.width, m.height = 100, 30
	m.cache.setSize(100, 26)

	out := m.View()
	if !strings.Contains(out, "maria") {
		t.Error("status bar should show the operator")
	}
	if !strings.Contains(out, "Atendimento") {
		t.Error("menu bar should show the module labels")
	}
}
