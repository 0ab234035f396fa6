// Package tui implements the interactive terminal client.
//
// A single bubbletea program hosts three screens: login, register, and the
// todo list. The top-level model is the router; moving to the todos screen
// is guarded by the session's authenticated flag, re-checked on every
// navigation. A 401 from any request clears the session, which reaches the
// router as a session change and forces the login screen.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eklerner/tdo/api"
	"github.com/eklerner/tdo/session"
)

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenTodos
)

type navigateMsg struct {
	target screen
}

func navigateTo(target screen) tea.Cmd {
	return func() tea.Msg { return navigateMsg{target: target} }
}

type sessionChangedMsg struct {
	authenticated bool
}

type model struct {
	ctx      context.Context
	client   *api.Client
	sessions *session.Store
	width    int
	height   int
	screen   screen
	login    loginModel
	register registerModel
	todos    todosModel
}

// Run starts the interactive client and blocks until it exits.
func Run(ctx context.Context, client *api.Client, sessions *session.Store) error {
	if client == nil {
		return fmt.Errorf("api client is required")
	}
	if sessions == nil {
		return fmt.Errorf("session store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	program := tea.NewProgram(newModel(ctx, client, sessions), tea.WithAltScreen(), tea.WithContext(ctx))
	sessions.Subscribe(func() {
		program.Send(sessionChangedMsg{authenticated: sessions.IsAuthenticated()})
	})
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, client *api.Client, sessions *session.Store) model {
	m := model{
		ctx:      ctx,
		client:   client,
		sessions: sessions,
		screen:   screenLogin,
		login:    newLoginModel(ctx, sessions),
		register: newRegisterModel(ctx, sessions),
		todos:    newTodosModel(ctx, client, sessions),
	}
	// A restored session skips the login screen entirely.
	if sessions.IsAuthenticated() {
		m.screen = screenTodos
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.screen == screenTodos {
		return m.todos.fetchCmd()
	}
	return m.login.focusCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.login = m.login.SetSize(msg.Width, msg.Height)
		m.register = m.register.SetSize(msg.Width, msg.Height)
		m.todos = m.todos.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case navigateMsg:
		return m.route(msg.target)

	case logoutMsg:
		m.sessions.Logout()
		return m.route(screenLogin)

	case sessionChangedMsg:
		if !msg.authenticated && m.screen == screenTodos {
			updated, cmd := m.route(screenLogin)
			if routed, ok := updated.(model); ok {
				routed.login = routed.login.WithError("Session expired, please log in again")
				return routed, cmd
			}
			return updated, cmd
		}
		return m, nil
	}

	return m.updateScreen(msg)
}

// route moves to the target screen. The todos screen is protected: without
// a session the router lands on login instead.
func (m model) route(target screen) (tea.Model, tea.Cmd) {
	if target == screenTodos && !m.sessions.IsAuthenticated() {
		target = screenLogin
	}
	if target == m.screen {
		return m, nil
	}
	m.screen = target
	switch target {
	case screenLogin:
		m.login = m.login.Reset()
		return m, m.login.focusCmd()
	case screenRegister:
		m.register = m.register.Reset()
		return m, m.register.focusCmd()
	case screenTodos:
		m.todos = m.todos.Reset()
		return m, m.todos.fetchCmd()
	}
	return m, nil
}

func (m model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenLogin:
		m.login, cmd = m.login.Update(msg)
	case screenRegister:
		m.register, cmd = m.register.Update(msg)
	case screenTodos:
		m.todos, cmd = m.todos.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string
	switch m.screen {
	case screenLogin:
		content = m.login.View()
	case screenRegister:
		content = m.register.View()
	case screenTodos:
		content = m.todos.View()
	}

	header := titleStyle.Render("tdo") + " " + valueMuted.Render(screenName(m.screen))
	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

func screenName(s screen) string {
	switch s {
	case screenLogin:
		return "login"
	case screenRegister:
		return "register"
	case screenTodos:
		return "todos"
	default:
		return ""
	}
}
