// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// resource.go - Generic list page backed by a GET endpoint.
package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theclinic/clinic-tui/internal/nav"
)

// fetchTimeout bounds one resource list request.
const fetchTimeout = 20 * time.Second

// resourceColumn maps one JSON field to a table column.
type resourceColumn struct {
	Key   string
	Title string
	Width int
}

// resourceSpec binds a catalog route to its backing endpoint and the
// columns its table shows.
type resourceSpec struct {
	Endpoint string
	Columns  []resourceColumn
}

// resourceSpecs covers the list routes of the catalog. Routes absent
// here mount as placeholders.
var resourceSpecs = map[string]resourceSpec{
	"/prontuarios": {
		Endpoint: "prontuarios/",
		Columns: []resourceColumn{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "paciente", Title: "Paciente", Width: 30},
			{Key: "profissional", Title: "Profissional", Width: 24},
			{Key: "data", Title: "Data", Width: 16},
		},
	},
	"/triagem": {
		Endpoint: "triagem/",
		Columns: []resourceColumn{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "paciente", Title: "Paciente", Width: 30},
			{Key: "prioridade", Title: "Prioridade", Width: 12},
			{Key: "chegada", Title: "Chegada", Width: 16},
		},
	},
	"/recepcao": {
		Endpoint: "recepcao/",
		Columns: []resourceColumn{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "paciente", Title: "Paciente", Width: 30},
			{Key: "horario", Title: "Horário", Width: 12},
			{Key: "situacao", Title: "Situação", Width: 16},
		},
	},
	"/pacientes": {
		Endpoint: "pacientes/",
		Columns: []resourceColumn{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "nome", Title: "Nome", Width: 32},
			{Key: "cpf", Title: "CPF", Width: 16},
			{Key: "telefone", Title: "Telefone", Width: 16},
		},
	},
	"/operadores": {
		Endpoint: "operadores/",
		Columns: []resourceColumn{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "username", Title: "Usuário", Width: 20},
			{Key: "nome", Title: "Nome", Width: 30},
		},
	},
	"/profissionais": {
		Endpoint: "profissionais/",
		Columns: []resourceColumn{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "nome", Title: "Nome", Width: 30},
			{Key: "especialidade", Title: "Especialidade", Width: 22},
			{Key: "conselho", Title: "Conselho", Width: 14},
		},
	},
	"/especialidades": {
		Endpoint: "especialidades/",
		Columns: []resourceColumn{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "nome", Title: "Nome", Width: 36},
		},
	},
	"/convenios": {
		Endpoint: "convenios/",
		Columns: []resourceColumn{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "nome", Title: "Nome", Width: 32},
			{Key: "registro", Title: "Registro", Width: 18},
		},
	},
	"/agenda/bloqueios": {
		Endpoint: "agenda/bloqueios/",
		Columns: []resourceColumn{
			{Key: "id", Title: "ID", Width: 6},
			{Key: "profissional", Title: "Profissional", Width: 26},
			{Key: "inicio", Title: "Início", Width: 16},
			{Key: "fim", Title: "Fim", Width: 16},
		},
	},
}

// =============================================================================
// MESSAGES
// =============================================================================

// rowsMsg delivers fetched rows to the page that requested them.
type rowsMsg struct {
	path string
	rows []map[string]any
}

// fetchErrMsg delivers a fetch failure.
type fetchErrMsg struct {
	path string
	err  error
}

// =============================================================================
// RESOURCE PAGE
// =============================================================================

type resourcePage struct {
	deps  Deps
	route nav.Route
	spec  resourceSpec

	table   table.Model
	spinner spinner.Model
	loading bool
	loadErr error
	count   int

	width  int
	height int
}

func newResource(route nav.Route, spec resourceSpec, deps Deps) Page {
	columns := make([]table.Column, len(spec.Columns))
	for i, col := range spec.Columns {
		columns[i] = table.Column{Title: col.Title, Width: col.Width}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Theme.Spinner

	return &resourcePage{
		deps:    deps,
		route:   route,
		spec:    spec,
		table:   t,
		spinner: sp,
		loading: true,
	}
}

func (p *resourcePage) Path() string { return p.route.Path }

func (p *resourcePage) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, p.fetchCmd())
}

func (p *resourcePage) fetchCmd() tea.Cmd {
	client, path, endpoint := p.deps.Client, p.route.Path, p.spec.Endpoint
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		rows, err := client.Fetch(ctx, endpoint)
		if err != nil {
			return fetchErrMsg{path: path, err: err}
		}
		return rowsMsg{path: path, rows: rows}
	}
}

func (p *resourcePage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case rowsMsg:
		if msg.path != p.route.Path {
			return p, nil
		}
		p.loading = false
		p.loadErr = nil
		p.count = len(msg.rows)
		p.table.SetRows(p.tableRows(msg.rows))
		return p, nil

	case fetchErrMsg:
		if msg.path != p.route.Path {
			return p, nil
		}
		p.loading = false
		p.loadErr = msg.err
		return p, nil

	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		if msg.String() == "r" && !p.loading {
			p.loading = true
			p.loadErr = nil
			return p, tea.Batch(p.spinner.Tick, p.fetchCmd())
		}
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// tableRows projects the JSON objects onto the column spec. Missing
// fields render empty; numbers lose their float64 JSON dressing.
func (p *resourcePage) tableRows(rows []map[string]any) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		cells := make(table.Row, len(p.spec.Columns))
		for j, col := range p.spec.Columns {
			cells[j] = cellString(row[col.Key])
		}
		out[i] = cells
	}
	return out
}

func cellString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.2f", v)
	case bool:
		if v {
			return "sim"
		}
		return "não"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (p *resourcePage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.table.SetWidth(width)
	if height > 4 {
		p.table.SetHeight(height - 4)
	}
}

func (p *resourcePage) View() string {
	theme := p.deps.Theme
	title := theme.PageTitle.Render(p.route.Title)

	if p.loading {
		return title + "\n" + p.spinner.View() + theme.LoadingText.Render(" carregando...")
	}
	if p.loadErr != nil {
		return title + "\n" + theme.NoticeError.Render(
			"Não foi possível carregar os dados. Pressione r para tentar novamente.")
	}

	footer := theme.LoadingText.Render(fmt.Sprintf("%d registros · r recarrega", p.count))
	return title + "\n" + p.table.View() + "\n" + footer
}
