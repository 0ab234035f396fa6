package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eklerner/tdo/session"
)

type loginResultMsg struct {
	err error
}

type loginModel struct {
	ctx      context.Context
	sessions *session.Store
	fields   form
	errMsg   string
	busy     bool
	width    int
	height   int
}

func newLoginFields() form {
	return newForm(
		newFormField(fieldEmail, "Email:   ", "you@example.com", ""),
		newFormField(fieldPassword, "Password:", "", ""),
	)
}

func newLoginModel(ctx context.Context, sessions *session.Store) loginModel {
	return loginModel{
		ctx:      ctx,
		sessions: sessions,
		fields:   newLoginFields(),
	}
}

func (m loginModel) Reset() loginModel {
	m.fields = newLoginFields().SetWidth(m.formWidth())
	m.errMsg = ""
	m.busy = false
	return m
}

func (m loginModel) WithError(msg string) loginModel {
	m.errMsg = msg
	return m
}

func (m loginModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) SetSize(width, height int) loginModel {
	m.width = width
	m.height = height
	m.fields = m.fields.SetWidth(m.formWidth())
	return m
}

func (m loginModel) formWidth() int {
	w := m.width - 16
	if w > 40 {
		w = 40
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.fields = m.fields.Advance(1)
			return m, nil
		case "shift+tab", "up":
			m.fields = m.fields.Advance(-1)
			return m, nil
		case "enter":
			return m.submit()
		case "ctrl+r":
			return m, navigateTo(screenRegister)
		case "esc", "ctrl+q":
			return m, tea.Quit
		}

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, navigateTo(screenTodos)
	}

	var cmd tea.Cmd
	m.fields, cmd = m.fields.Update(msg)
	return m, cmd
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := m.fields.Value(fieldEmail)
	password := m.fields.Value(fieldPassword)
	if email == "" || password == "" {
		m.errMsg = "Email and password are required"
		return m, nil
	}
	m.busy = true
	m.errMsg = ""
	ctx, sessions := m.ctx, m.sessions
	return m, func() tea.Msg {
		return loginResultMsg{err: sessions.Login(ctx, email, password)}
	}
}

func (m loginModel) View() string {
	body := titleStyle.Render("Log in") + "\n\n" + m.fields.View()
	if m.busy {
		body += "\n\n" + valueMuted.Render("Logging in...")
	} else if m.errMsg != "" {
		body += "\n\n" + statusErrorStyle.Render(m.errMsg)
	}
	body += "\n\n" + valueMuted.Render("enter: submit  ctrl+r: register  esc: quit")
	pane := paneActiveStyle.Render(body)
	if m.width == 0 {
		return pane
	}
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, pane)
}
