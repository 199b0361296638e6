// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// password.go - Forced password change form.
//
// Mounted for the locked route: while the profile carries the forced
// flag, navigation cannot leave this page, so the form is the only way
// forward. Submitting drives the password-change endpoint and emits
// PasswordChangedMsg on success.
package pages

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theclinic/clinic-tui/internal/nav"
)

const changeTimeout = 20 * time.Second

// minPasswordLen mirrors the server-side validator, checked locally to
// save a round trip on obviously short passwords.
const minPasswordLen = 8

// passwordDoneMsg is the internal outcome of the change request.
type passwordDoneMsg struct {
	err error
}

const (
	fieldCurrent = iota
	fieldNew
	fieldConfirm
	fieldCount
)

type passwordPage struct {
	deps Deps

	inputs  [fieldCount]textinput.Model
	focus   int
	sending bool
	errMsg  string
	width   int
}

func newPasswordChange(deps Deps) Page {
	p := &passwordPage{deps: deps}

	labels := [fieldCount]string{"Senha atual", "Nova senha", "Confirme a nova senha"}
	for i := range p.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
		in.CharLimit = 128
		p.inputs[i] = in
	}
	p.inputs[fieldCurrent].Focus()
	return p
}

func (p *passwordPage) Path() string  { return nav.PathPasswordChange }
func (p *passwordPage) Init() tea.Cmd { return textinput.Blink }

func (p *passwordPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case passwordDoneMsg:
		p.sending = false
		if msg.err != nil {
			p.errMsg = "Não foi possível trocar a senha. Verifique a senha atual."
			return p, nil
		}
		p.errMsg = ""
		return p, func() tea.Msg { return PasswordChangedMsg{} }

	case tea.KeyMsg:
		if p.sending {
			return p, nil
		}
		switch msg.String() {
		case "tab", "down":
			p.setFocus((p.focus + 1) % fieldCount)
			return p, nil
		case "shift+tab", "up":
			p.setFocus((p.focus - 1 + fieldCount) % fieldCount)
			return p, nil
		case "enter":
			if p.focus < fieldConfirm {
				p.setFocus(p.focus + 1)
				return p, nil
			}
			return p, p.submit()
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

func (p *passwordPage) setFocus(i int) {
	p.inputs[p.focus].Blur()
	p.focus = i
	p.inputs[p.focus].Focus()
}

func (p *passwordPage) submit() tea.Cmd {
	current := p.inputs[fieldCurrent].Value()
	next := p.inputs[fieldNew].Value()
	confirm := p.inputs[fieldConfirm].Value()

	switch {
	case current == "" || next == "":
		p.errMsg = "Preencha todos os campos."
		return nil
	case len(next) < minPasswordLen:
		p.errMsg = "A nova senha deve ter ao menos 8 caracteres."
		return nil
	case next != confirm:
		p.errMsg = "As senhas não conferem."
		return nil
	}

	p.sending = true
	p.errMsg = ""
	client := p.deps.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), changeTimeout)
		defer cancel()
		return passwordDoneMsg{err: client.ChangePassword(ctx, current, next)}
	}
}

func (p *passwordPage) SetSize(width, _ int) {
	p.width = width
}

func (p *passwordPage) View() string {
	theme := p.deps.Theme
	var b strings.Builder

	b.WriteString(theme.FormTitle.Render("Troca de senha obrigatória"))
	b.WriteString("\n")
	b.WriteString(theme.FormLabel.Render("Defina uma nova senha para continuar."))
	b.WriteString("\n\n")
	for i := range p.inputs {
		b.WriteString(p.inputs[i].View())
		b.WriteString("\n")
	}
	if p.sending {
		b.WriteString(theme.LoadingText.Render("enviando..."))
	} else if p.errMsg != "" {
		b.WriteString(theme.FormError.Render(p.errMsg))
	} else {
		b.WriteString(theme.FormHint.Render("enter confirma · tab alterna campos"))
	}

	return theme.FormBox.Render(b.String())
}
