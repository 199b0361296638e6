// clinic - terminal client for the clinic management system.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theclinic/clinic-tui/internal/api"
	"github.com/theclinic/clinic-tui/internal/auth"
	"github.com/theclinic/clinic-tui/internal/cli"
	"github.com/theclinic/clinic-tui/internal/config"
	"github.com/theclinic/clinic-tui/internal/store"
	"github.com/theclinic/clinic-tui/internal/ui/login"
	"github.com/theclinic/clinic-tui/internal/ui/pages"
	"github.com/theclinic/clinic-tui/internal/ui/styles"
	"github.com/theclinic/clinic-tui/internal/ui/workspace"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
	api.Version = Version
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI()
	case cli.CmdLogin:
		err = cli.HandleLogin(args)
	case cli.CmdLogout:
		err = cli.HandleLogout(args)
	case cli.CmdStatus:
		err = cli.HandleStatus(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// =============================================================================
// TUI BOOTSTRAP
// =============================================================================

func runTUI() error {
	cfg, cfgErr := config.Load()

	logFile := setupLogging()
	if logFile != nil {
		defer logFile.Close()
	}
	if cfgErr != nil {
		log.Printf("config load: %v (using defaults)", cfgErr)
	}

	client := api.NewClient(cfg.API.BaseURL).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second)

	durable, err := store.NewFileScope(config.StateDir())
	if err != nil {
		return fmt.Errorf("failed to open state directory: %w", err)
	}
	sessionScope := store.NewMemoryScope()
	authStore := auth.NewStore(client, durable, sessionScope)

	theme := styles.NewTheme(cfg.UI.Theme)
	deps := pages.Deps{Client: client, Theme: theme}

	app := newApp(deps, authStore, sessionScope)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Mid-session credential rejection arrives from the HTTP layer,
	// outside the event loop.
	authStore.SetExpiredHandler(func() {
		p.Send(sessionExpiredMsg{})
	})

	watcher, err := config.NewWatcher(config.Path(), func(next config.Config) {
		client.WithTimeout(time.Duration(next.API.TimeoutSecs) * time.Second)
		log.Printf("config reloaded")
	})
	if err != nil {
		log.Printf("config watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	_, err = p.Run()
	return err
}

// setupLogging sends the stdlib logger to a file under the dot
// directory so log lines never corrupt the alternate screen.
func setupLogging() *os.File {
	path := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	log.SetOutput(f)
	return f
}

// =============================================================================
// ROOT MODEL
// =============================================================================

// restoreTimeout bounds the silent session restore at startup.
const restoreTimeout = 15 * time.Second

type appState int

const (
	stateRestoring appState = iota
	stateLogin
	stateWorkspace
)

// restoreDoneMsg reports that the startup session restore settled.
type restoreDoneMsg struct{}

// sessionExpiredMsg arrives when the server rejects the credential
// mid-session.
type sessionExpiredMsg struct{}

type appModel struct {
	authStore *auth.Store
	login     *login.Model
	workspace *workspace.Model
	spinner   spinner.Model
	theme     *styles.Theme

	state    appState
	returnTo string

	width  int
	height int
}

func newApp(deps pages.Deps, authStore *auth.Store, sessionScope *store.MemoryScope) *appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Theme.Spinner

	return &appModel{
		authStore: authStore,
		login:     login.New(authStore, deps.Theme),
		workspace: workspace.New(deps, authStore, sessionScope),
		spinner:   sp,
		theme:     deps.Theme,
		state:     stateRestoring,
	}
}

func (a *appModel) Init() tea.Cmd {
	store := a.authStore
	restore := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
		defer cancel()
		store.Restore(ctx)
		return restoreDoneMsg{}
	}
	return tea.Batch(a.spinner.Tick, a.login.Init(), restore)
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.SetSize(msg.Width, msg.Height)
		var cmd tea.Cmd
		a.workspace, cmd = a.workspace.Update(msg)
		return a, cmd

	case restoreDoneMsg:
		if a.authStore.State() == auth.StateAuthenticated {
			a.state = stateWorkspace
			return a, a.workspace.Start("")
		}
		a.state = stateLogin
		return a, nil

	case login.SucceededMsg:
		a.state = stateWorkspace
		cmd := a.workspace.Start(a.returnTo)
		a.returnTo = ""
		return a, cmd

	case workspace.LoggedOutMsg:
		a.state = stateLogin
		a.login.Reset()
		return a, a.login.Init()

	case sessionExpiredMsg:
		a.returnTo = a.workspace.CurrentPath()
		a.workspace.Shutdown()
		a.state = stateLogin
		a.login.Reset()
		a.login.SetNotice(login.MsgSessionExpired)
		return a, a.login.Init()

	case spinner.TickMsg:
		if a.state == stateRestoring {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}

	case tea.KeyMsg:
		if a.state != stateWorkspace {
			switch msg.String() {
			case "ctrl+c", "ctrl+q":
				return a, tea.Quit
			}
		}
	}

	switch a.state {
	case stateLogin:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	case stateWorkspace:
		var cmd tea.Cmd
		a.workspace, cmd = a.workspace.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *appModel) View() string {
	switch a.state {
	case stateRestoring:
		text := a.spinner.View() + a.theme.LoadingText.Render(" restaurando sessão...")
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, text)
		}
		return text
	case stateLogin:
		return a.login.View()
	default:
		return a.workspace.View()
	}
}
