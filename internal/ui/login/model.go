// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - Login form model.
package login

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theclinic/clinic-tui/internal/auth"
	"github.com/theclinic/clinic-tui/internal/ui/styles"
)

// loginTimeout bounds the full login round trip (token + profile).
const loginTimeout = 30 * time.Second

// MsgSessionExpired is shown when the operator lands here after a
// mid-session credential rejection.
const MsgSessionExpired = "Sua sessão expirou. Entre novamente."

// SucceededMsg signals the root model that authentication completed.
type SucceededMsg struct{}

// resultMsg carries the outcome of an asynchronous login attempt.
type resultMsg auth.LoginResult

const (
	focusUsername = iota
	focusPassword
	focusRemember
	focusCount
)

// Model is the login screen state.
type Model struct {
	store *auth.Store
	theme *styles.Theme

	username textinput.Model
	password textinput.Model
	remember bool
	focus    int

	sending bool
	errMsg  string
	notice  string

	width  int
	height int
}

// New builds the login screen over the given session store.
func New(store *auth.Store, theme *styles.Theme) *Model {
	user := textinput.New()
	user.Placeholder = "Usuário"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "Senha"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return &Model{store: store, theme: theme, username: user, password: pass}
}

// SetNotice shows a one-shot informational line above the form, used
// for the session-expired advisory.
func (m *Model) SetNotice(text string) {
	m.notice = text
}

// Reset clears the form for a fresh login after logout or expiry.
func (m *Model) Reset() {
	m.username.SetValue("")
	m.password.SetValue("")
	m.remember = false
	m.sending = false
	m.errMsg = ""
	m.setFocus(focusUsername)
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.sending = false
		if !msg.OK {
			m.errMsg = msg.Message
			if m.errMsg == "" {
				m.errMsg = auth.MsgInvalidCredentials
			}
			m.password.SetValue("")
			m.setFocus(focusPassword)
			return m, nil
		}
		m.errMsg = ""
		m.notice = ""
		return m, func() tea.Msg { return SucceededMsg{} }

	case tea.KeyMsg:
		if m.sending {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus - 1 + focusCount) % focusCount)
			return m, nil
		case " ":
			if m.focus == focusRemember {
				m.remember = !m.remember
				return m, nil
			}
		case "enter":
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusUsername:
		m.username, cmd = m.username.Update(msg)
	case focusPassword:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.username.Blur()
	m.password.Blur()
	m.focus = i
	switch i {
	case focusUsername:
		m.username.Focus()
	case focusPassword:
		m.password.Focus()
	}
}

func (m *Model) submit() tea.Cmd {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.errMsg = "Informe usuário e senha."
		return nil
	}

	m.sending = true
	m.errMsg = ""
	store, remember := m.store, m.remember
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		return resultMsg(store.Login(ctx, username, password, remember))
	}
}

func (m *Model) View() string {
	theme := m.theme
	var b strings.Builder

	b.WriteString(theme.FormTitle.Render("theclinic"))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(theme.NoticeWarning.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	check := "[ ]"
	if m.remember {
		check = "[x]"
	}
	rememberStyle := theme.FormLabel
	if m.focus == focusRemember {
		rememberStyle = theme.ButtonFocus
	}
	b.WriteString(rememberStyle.Render(check + " Manter conectado"))
	b.WriteString("\n\n")

	switch {
	case m.sending:
		b.WriteString(theme.LoadingText.Render("autenticando..."))
	case m.errMsg != "":
		b.WriteString(theme.FormError.Render(m.errMsg))
	default:
		b.WriteString(theme.FormHint.Render("enter entra · tab alterna campos"))
	}

	box := theme.FormBox.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
