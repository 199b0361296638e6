// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pages

import (
	"strings"
	"testing"

	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/nav"
	"github.com/theclinic/clinic-tui/internal/ui/styles"
)

func testDeps() Deps {
	return Deps{
		Client: api.NewClient("http://localhost:1"),
		Theme:  styles.NewTheme("dark"),
	}
}

func TestNew_MountsByRoute(t *testing.T) {
	deps := testDeps()

	if _, ok := New(nav.Dashboard, nav.PathDashboard, deps).(*dashboardPage); !ok {
		t.Error("dashboard route should mount the dashboard page")
	}

	route, ok := nav.Resolve("/pacientes")
	if !ok {
		t.Fatal("catalog is missing /pacientes")
	}
	if _, ok := New(route, "/pacientes", deps).(*resourcePage); !ok {
		t.Error("list route should mount the resource page")
	}

	route, ok = nav.Resolve("/agenda/marcar")
	if !ok {
		t.Fatal("catalog is missing /agenda/marcar")
	}
	if _, ok := New(route, "/agenda/marcar", deps).(*placeholderPage); !ok {
		t.Error("form route should mount the placeholder page")
	}
}

func TestResourceSpecs_CoverOnlyCatalogRoutes(t *testing.T) {
	for path := range resourceSpecs {
		route, ok := nav.Resolve(path)
		if !ok || route.Path != path {
			t.Errorf("spec path %q is not a catalog route", path)
		}
	}
}

func TestResourcePage_RowsProjection(t *testing.T) {
	route, _ := nav.Resolve("/pacientes")
	p := New(route, "/pacientes", testDeps()).(*resourcePage)

	rows := p.tableRows([]map[string]any{
		{"id": float64(7), "nome": "Ana Souza", "telefone": nil},
	})
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0][0] != "7" {
		t.Errorf("id cell = %q, want 7", rows[0][0])
	}
	if rows[0][1] != "Ana Souza" {
		t.Errorf("nome cell = %q", rows[0][1])
	}
	if rows[0][3] != "" {
		t.Errorf("missing field should render empty, got %q", rows[0][3])
	}
}

func TestResourcePage_FetchErrorShowsRetryHint(t *testing.T) {
	route, _ := nav.Resolve("/convenios")
	page := New(route, "/convenios", testDeps())

	page, _ = page.Update(fetchErrMsg{path: "/convenios", err: api.ErrUnavailable})
	if !strings.Contains(page.View(), "tentar novamente") {
		t.Error("fetch failure should surface a retry hint")
	}
}

func TestPasswordPage_LocalValidation(t *testing.T) {
	p := newPasswordChange(testDeps()).(*passwordPage)

	p.inputs[fieldCurrent].SetValue("antiga123")
	p.inputs[fieldNew].SetValue("curta")
	p.inputs[fieldConfirm].SetValue("curta")
	if cmd := p.submit(); cmd != nil {
		t.Error("short password should fail locally without a request")
	}
	if p.errMsg == "" {
		t.Error("validation failure should set the form error")
	}

	p.inputs[fieldNew].SetValue("novaSenha123")
	p.inputs[fieldConfirm].SetValue("outraSenha123")
	if cmd := p.submit(); cmd != nil {
		t.Error("mismatched confirmation should fail locally")
	}

	p.inputs[fieldConfirm].SetValue("novaSenha123")
	if cmd := p.submit(); cmd == nil {
		t.Error("valid form should produce a request command")
	}
}
