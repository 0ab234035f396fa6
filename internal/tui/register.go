package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eklerner/tdo/session"
)

type registerResultMsg struct {
	err error
}

type registerModel struct {
	ctx      context.Context
	sessions *session.Store
	fields   form
	errMsg   string
	busy     bool
	width    int
	height   int
}

func newRegisterFields() form {
	return newForm(
		newFormField(fieldEmail, "Email:        ", "you@example.com", ""),
		newFormField(fieldPassword, "Password:     ", "", ""),
		newFormField(fieldSlackChannel, "Slack channel:", "optional", ""),
	)
}

func newRegisterModel(ctx context.Context, sessions *session.Store) registerModel {
	return registerModel{
		ctx:      ctx,
		sessions: sessions,
		fields:   newRegisterFields(),
	}
}

func (m registerModel) Reset() registerModel {
	m.fields = newRegisterFields().SetWidth(m.formWidth())
	m.errMsg = ""
	m.busy = false
	return m
}

func (m registerModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (m registerModel) SetSize(width, height int) registerModel {
	m.width = width
	m.height = height
	m.fields = m.fields.SetWidth(m.formWidth())
	return m
}

func (m registerModel) formWidth() int {
	w := m.width - 20
	if w > 40 {
		w = 40
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
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
		case "esc":
			return m, navigateTo(screenLogin)
		}

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		// Registration does not open a session; the user logs in next.
		return m, navigateTo(screenLogin)
	}

	var cmd tea.Cmd
	m.fields, cmd = m.fields.Update(msg)
	return m, cmd
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	email := m.fields.Value(fieldEmail)
	password := m.fields.Value(fieldPassword)
	slackChannel := m.fields.Value(fieldSlackChannel)
	if email == "" || password == "" {
		m.errMsg = "Email and password are required"
		return m, nil
	}
	m.busy = true
	m.errMsg = ""
	ctx, sessions := m.ctx, m.sessions
	return m, func() tea.Msg {
		return registerResultMsg{err: sessions.Register(ctx, email, password, slackChannel)}
	}
}

func (m registerModel) View() string {
	body := titleStyle.Render("Register") + "\n\n" + m.fields.View()
	if m.busy {
		body += "\n\n" + valueMuted.Render("Registering...")
	} else if m.errMsg != "" {
		body += "\n\n" + statusErrorStyle.Render(m.errMsg)
	}
	body += "\n\n" + valueMuted.Render("enter: submit  esc: back to login")
	pane := paneActiveStyle.Render(body)
	if m.width == 0 {
		return pane
	}
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, pane)
}
