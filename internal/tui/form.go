package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldEmail fieldKind = iota
	fieldPassword
	fieldSlackChannel
	fieldDescription
	fieldDueDate
	fieldTags
	fieldPriority
	fieldAttachments
	fieldNotes
)

type formField struct {
	kind      fieldKind
	label     string
	input     textinput.Model
	textarea  textarea.Model
	multiLine bool
}

func newFormField(kind fieldKind, label, placeholder, value string) formField {
	field := formField{kind: kind, label: label}
	if kind == fieldNotes {
		area := textarea.New()
		area.SetValue(value)
		area.ShowLineNumbers = false
		area.Prompt = ""
		area.SetHeight(3)
		field.textarea = area
		field.multiLine = true
		return field
	}
	input := textinput.New()
	input.SetValue(value)
	input.Prompt = ""
	input.Placeholder = placeholder
	if kind == fieldPassword {
		input.EchoMode = textinput.EchoPassword
	}
	field.input = input
	return field
}

func (field formField) Value() string {
	if field.multiLine {
		return field.textarea.Value()
	}
	return field.input.Value()
}

func (field formField) Focus() formField {
	if field.multiLine {
		field.textarea.Focus()
		return field
	}
	field.input.Focus()
	return field
}

func (field formField) Blur() formField {
	if field.multiLine {
		field.textarea.Blur()
		return field
	}
	field.input.Blur()
	return field
}

func (field formField) Update(msg tea.Msg) (formField, tea.Cmd) {
	var cmd tea.Cmd
	if field.multiLine {
		field.textarea, cmd = field.textarea.Update(msg)
		return field, cmd
	}
	field.input, cmd = field.input.Update(msg)
	return field, cmd
}

func (field formField) View() string {
	label := labelStyle.Render(field.label)
	if field.multiLine {
		return lipgloss.JoinVertical(lipgloss.Left, label, field.textarea.View())
	}
	return label + " " + field.input.View()
}

func (field formField) SetWidth(width int) formField {
	if width < 10 {
		width = 10
	}
	if field.multiLine {
		field.textarea.SetWidth(width)
		return field
	}
	field.input.Width = width
	return field
}

// form is an ordered set of fields with one focused at a time.
type form struct {
	fields     []formField
	fieldIndex int
}

func newForm(fields ...formField) form {
	return form{fields: fields}.Focus()
}

func (f form) Focus() form {
	if len(f.fields) > 0 {
		f.fields[f.fieldIndex] = f.fields[f.fieldIndex].Focus()
	}
	return f
}

func (f form) Blur() form {
	for i := range f.fields {
		f.fields[i] = f.fields[i].Blur()
	}
	return f
}

func (f form) Advance(delta int) form {
	if len(f.fields) == 0 {
		return f
	}
	f.fields[f.fieldIndex] = f.fields[f.fieldIndex].Blur()
	f.fieldIndex = (f.fieldIndex + delta + len(f.fields)) % len(f.fields)
	f.fields[f.fieldIndex] = f.fields[f.fieldIndex].Focus()
	return f
}

func (f form) Update(msg tea.Msg) (form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.fields[f.fieldIndex], cmd = f.fields[f.fieldIndex].Update(msg)
	return f, cmd
}

func (f form) Value(kind fieldKind) string {
	for _, field := range f.fields {
		if field.kind == kind {
			return field.Value()
		}
	}
	return ""
}

func (f form) SetWidth(width int) form {
	for i := range f.fields {
		f.fields[i] = f.fields[i].SetWidth(width)
	}
	return f
}

func (f form) View() string {
	views := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		views = append(views, field.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}
