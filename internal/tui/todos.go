package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eklerner/tdo/api"
	"github.com/eklerner/tdo/internal/markdown"
	internalstrings "github.com/eklerner/tdo/internal/strings"
	"github.com/eklerner/tdo/internal/ui"
	"github.com/eklerner/tdo/session"
	"github.com/eklerner/tdo/todo"
)

type todosFocus int

const (
	focusList todosFocus = iota
	focusSearch
	focusCreate
	focusEdit
	focusConfirmDelete
)

type todosLoadedMsg struct {
	items []todo.Todo
	err   error
}

type todoCreatedMsg struct {
	item todo.Todo
	err  error
}

type todoSavedMsg struct {
	item todo.Todo
	err  error
}

type todoToggledMsg struct {
	item todo.Todo
	err  error
}

type todoDeletedMsg struct {
	id  int64
	err error
}

type logoutMsg struct{}

const dueInputLayout = "2006-01-02 15:04"

type todosModel struct {
	ctx      context.Context
	client   *api.Client
	sessions *session.Store

	width  int
	height int

	focus  todosFocus
	items  []todo.Todo
	cursor int

	descSearch    textinput.Model
	payloadSearch textinput.Model
	searchIndex   int

	create form
	edit   form
	// editing holds the item the edit form was opened from, so that saving
	// can send only the fields that actually changed.
	editing todo.Todo

	loading   bool
	status    string
	statusErr bool
}

func newTodosModel(ctx context.Context, client *api.Client, sessions *session.Store) todosModel {
	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "description"
	payload := textinput.New()
	payload.Prompt = ""
	payload.Placeholder = "payload"
	return todosModel{
		ctx:           ctx,
		client:        client,
		sessions:      sessions,
		descSearch:    desc,
		payloadSearch: payload,
	}
}

func (m todosModel) Reset() todosModel {
	m.focus = focusList
	m.items = nil
	m.cursor = 0
	m.descSearch.SetValue("")
	m.payloadSearch.SetValue("")
	m.status = ""
	m.statusErr = false
	m.loading = true
	return m
}

func (m todosModel) SetSize(width, height int) todosModel {
	m.width = width
	m.height = height
	formWidth := m.paneWidth() - 18
	if formWidth < 20 {
		formWidth = 20
	}
	m.create = m.create.SetWidth(formWidth)
	m.edit = m.edit.SetWidth(formWidth)
	m.descSearch.Width = formWidth
	m.payloadSearch.Width = formWidth
	return m
}

func (m todosModel) paneWidth() int {
	w := m.width/2 - 2
	if w < 30 {
		w = 30
	}
	return w
}

func (m todosModel) filter() todo.Filter {
	return todo.Filter{
		Description: m.descSearch.Value(),
		Payload:     m.payloadSearch.Value(),
	}
}

// fetchCmd lists todos with the current filters. Responses are applied in
// arrival order; there is no request sequencing.
func (m todosModel) fetchCmd() tea.Cmd {
	ctx, client, filter := m.ctx, m.client, m.filter()
	return func() tea.Msg {
		items, err := client.ListTodos(ctx, filter)
		return todosLoadedMsg{items: items, err: err}
	}
}

func (m todosModel) selected() (todo.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return todo.Todo{}, false
	}
	return m.items[m.cursor], true
}

func (m todosModel) Update(msg tea.Msg) (todosModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.status, m.statusErr = "", false
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case todoCreatedMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.items = append(m.items, msg.item)
		m.cursor = len(m.items) - 1
		m.focus = focusList
		m.status, m.statusErr = fmt.Sprintf("Created todo %d", msg.item.ID), false
		return m, nil

	case todoSavedMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.replaceItem(msg.item)
		m.focus = focusList
		m.status, m.statusErr = fmt.Sprintf("Saved todo %d", msg.item.ID), false
		return m, nil

	case todoToggledMsg:
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.replaceItem(msg.item)
		return m, nil

	case todoDeletedMsg:
		m.focus = focusList
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
			return m, nil
		}
		m.removeItem(msg.id)
		m.status, m.statusErr = fmt.Sprintf("Deleted todo %d", msg.id), false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *todosModel) replaceItem(item todo.Todo) {
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = item
			return
		}
	}
}

func (m *todosModel) removeItem(id int64) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m todosModel) handleKey(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch m.focus {
	case focusList:
		return m.handleListKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusCreate, focusEdit:
		return m.handleFormKey(msg)
	case focusConfirmDelete:
		return m.handleConfirmKey(msg)
	}
	return m, nil
}

func (m todosModel) handleListKey(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "/":
		m.focus = focusSearch
		m.searchIndex = 0
		m.descSearch.Focus()
		m.payloadSearch.Blur()
		return m, textinput.Blink
	case "n":
		m.focus = focusCreate
		m.create = m.newCreateForm()
		return m, textinput.Blink
	case "e":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.focus = focusEdit
		m.editing = item
		m.edit = m.newEditForm(item)
		return m, textinput.Blink
	case "x", " ":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		ctx, client := m.ctx, m.client
		return m, func() tea.Msg {
			updated, err := client.UpdateTodo(ctx, item.ID, todo.Toggle(item))
			return todoToggledMsg{item: updated, err: err}
		}
	case "d":
		if _, ok := m.selected(); ok {
			m.focus = focusConfirmDelete
		}
	case "r":
		m.loading = true
		return m, m.fetchCmd()
	case "ctrl+l":
		return m, func() tea.Msg { return logoutMsg{} }
	case "q", "esc", "ctrl+q":
		return m, tea.Quit
	}
	return m, nil
}

func (m todosModel) handleSearchKey(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.searchIndex = 1 - m.searchIndex
		if m.searchIndex == 0 {
			m.descSearch.Focus()
			m.payloadSearch.Blur()
		} else {
			m.descSearch.Blur()
			m.payloadSearch.Focus()
		}
		return m, textinput.Blink
	case "enter", "esc":
		m.focus = focusList
		m.descSearch.Blur()
		m.payloadSearch.Blur()
		return m, m.fetchCmd()
	}

	var cmd tea.Cmd
	before := m.filter()
	if m.searchIndex == 0 {
		m.descSearch, cmd = m.descSearch.Update(msg)
	} else {
		m.payloadSearch, cmd = m.payloadSearch.Update(msg)
	}
	// Every edit to a filter refetches immediately.
	if m.filter() != before {
		m.loading = true
		return m, tea.Batch(cmd, m.fetchCmd())
	}
	return m, cmd
}

func (m todosModel) handleFormKey(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focus == focusCreate {
			m.create = m.create.Advance(1)
		} else {
			m.edit = m.edit.Advance(1)
		}
		return m, nil
	case "shift+tab":
		if m.focus == focusCreate {
			m.create = m.create.Advance(-1)
		} else {
			m.edit = m.edit.Advance(-1)
		}
		return m, nil
	case "ctrl+s":
		if m.focus == focusCreate {
			return m.submitCreate()
		}
		return m.submitEdit()
	case "esc":
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusCreate {
		m.create, cmd = m.create.Update(msg)
	} else {
		m.edit, cmd = m.edit.Update(msg)
	}
	return m, cmd
}

func (m todosModel) handleConfirmKey(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		item, ok := m.selected()
		if !ok {
			m.focus = focusList
			return m, nil
		}
		ctx, client := m.ctx, m.client
		return m, func() tea.Msg {
			return todoDeletedMsg{id: item.ID, err: client.DeleteTodo(ctx, item.ID)}
		}
	case "n", "esc":
		m.focus = focusList
	}
	return m, nil
}

func (m todosModel) newCreateForm() form {
	formWidth := m.paneWidth() - 18
	return newForm(
		newFormField(fieldDescription, "Description:", "what needs doing", ""),
		newFormField(fieldDueDate, "Due:        ", dueInputLayout, ""),
		newFormField(fieldTags, "Tags:       ", "comma, separated", ""),
		newFormField(fieldPriority, "Priority:   ", "low|medium|high", ""),
		newFormField(fieldAttachments, "Attachments:", "comma, separated", ""),
		newFormField(fieldNotes, "Notes:", "", ""),
	).SetWidth(formWidth)
}

func (m todosModel) newEditForm(item todo.Todo) form {
	formWidth := m.paneWidth() - 18
	return newForm(
		newFormField(fieldDescription, "Description:", "", item.Description),
		newFormField(fieldDueDate, "Due:        ", dueInputLayout, item.DueDate.Local().Format(dueInputLayout)),
		newFormField(fieldTags, "Tags:       ", "", todo.JoinList(item.Payload.Tags)),
		newFormField(fieldPriority, "Priority:   ", "", string(item.Payload.Priority)),
		newFormField(fieldAttachments, "Attachments:", "", todo.JoinList(item.Payload.Attachments)),
		newFormField(fieldNotes, "Notes:", "", item.Payload.Notes),
	).SetWidth(formWidth)
}

func (m todosModel) submitCreate() (todosModel, tea.Cmd) {
	description := internalstrings.NormalizeWhitespace(m.create.Value(fieldDescription))
	due, err := todo.ParseDueDate(m.create.Value(fieldDueDate))
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		return m, nil
	}
	if err := todo.ValidateNew(description, due); err != nil {
		m.status, m.statusErr = err.Error(), true
		return m, nil
	}
	payload, err := todo.PayloadFromForm(
		m.create.Value(fieldTags),
		m.create.Value(fieldPriority),
		m.create.Value(fieldAttachments),
		m.create.Value(fieldNotes),
	)
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		return m, nil
	}

	request := api.CreateTodoRequest{Description: description, DueDate: due}
	if !payload.IsEmpty() {
		request.Payload = &payload
	}
	ctx, client := m.ctx, m.client
	return m, func() tea.Msg {
		item, err := client.CreateTodo(ctx, request)
		return todoCreatedMsg{item: item, err: err}
	}
}

func (m todosModel) submitEdit() (todosModel, tea.Cmd) {
	original := m.editing
	var update todo.Update

	description := internalstrings.NormalizeWhitespace(m.edit.Value(fieldDescription))
	if description != "" && description != original.Description {
		update.SetDescription(description)
	}

	dueInput := strings.TrimSpace(m.edit.Value(fieldDueDate))
	if dueInput != "" {
		due, err := todo.ParseDueDate(dueInput)
		if err != nil {
			m.status, m.statusErr = err.Error(), true
			return m, nil
		}
		if !due.Equal(original.DueDate) {
			update.SetDueDate(due)
		}
	}

	payload, err := todo.PayloadFromForm(
		m.edit.Value(fieldTags),
		m.edit.Value(fieldPriority),
		m.edit.Value(fieldAttachments),
		m.edit.Value(fieldNotes),
	)
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		return m, nil
	}
	update.SetPayload(payload)

	if update.IsZero() {
		m.focus = focusList
		m.status, m.statusErr = "No changes", false
		return m, nil
	}

	ctx, client, id := m.ctx, m.client, original.ID
	return m, func() tea.Msg {
		item, err := client.UpdateTodo(ctx, id, update)
		return todoSavedMsg{item: item, err: err}
	}
}

func (m todosModel) View() string {
	left := m.listView()
	right := m.detailView()
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, panes, m.statusView(), m.helpView())
}

func (m todosModel) listView() string {
	now := time.Now()
	var lines []string
	switch {
	case m.loading && len(m.items) == 0:
		lines = append(lines, valueMuted.Render("Loading..."))
	case len(m.items) == 0:
		lines = append(lines, valueMuted.Render("No todos"))
	}
	for i, item := range m.items {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		line := marker + ui.Checkbox(item.Completed) + " " + item.Description
		if remaining, ok := todo.DueData(item, now); ok && !item.Completed {
			due := ui.FormatDue(remaining)
			if remaining < 0 {
				due = overdueStyle.Render(due)
			} else {
				due = valueMuted.Render(due)
			}
			line += " " + due
		}
		if item.Payload.Priority != "" {
			if style, ok := priorityStyle[string(item.Payload.Priority)]; ok {
				line += " " + style.Render(string(item.Payload.Priority))
			}
		}
		lines = append(lines, line)
	}

	title := "Todos"
	if m.descSearch.Value() != "" || m.payloadSearch.Value() != "" {
		title = "Todos (filtered)"
	}
	body := titleStyle.Render(title) + "\n\n" + strings.Join(lines, "\n")

	style := paneStyle
	if m.focus == focusList {
		style = paneActiveStyle
	}
	return style.Width(m.paneWidth()).Render(body)
}

func (m todosModel) detailView() string {
	style := paneStyle
	if m.focus != focusList {
		style = paneActiveStyle
	}

	var body string
	switch m.focus {
	case focusSearch:
		body = titleStyle.Render("Search") + "\n\n" +
			labelStyle.Render("Description:") + " " + m.descSearch.View() + "\n" +
			labelStyle.Render("Payload:    ") + " " + m.payloadSearch.View()
	case focusCreate:
		body = titleStyle.Render("New todo") + "\n\n" + m.create.View()
	case focusEdit:
		body = titleStyle.Render(fmt.Sprintf("Edit todo %d", m.editing.ID)) + "\n\n" + m.edit.View()
	case focusConfirmDelete:
		item, _ := m.selected()
		body = titleStyle.Render("Delete") + "\n\n" +
			fmt.Sprintf("Delete todo %d (%s)?", item.ID, item.Description) + "\n\n" +
			valueMuted.Render("y: delete  n: cancel")
	default:
		body = m.selectedDetail()
	}
	return style.Width(m.paneWidth()).Render(body)
}

func (m todosModel) selectedDetail() string {
	item, ok := m.selected()
	if !ok {
		return valueMuted.Render("Nothing selected")
	}

	now := time.Now()
	description := markdown.ReflowParagraphs(item.Description, m.paneWidth()-6)
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Todo %d", item.ID)),
		"",
		labelStyle.Render("Description:"),
		ui.StrikeCompleted(description, item.Completed),
		labelStyle.Render("Due:        ") + " " + item.DueDate.Local().Format(dueInputLayout),
		labelStyle.Render("Created:    ") + " " + ui.FormatTimeAgo(item.CreatedAt, now),
	}
	if item.Completed && item.CompletedAt != nil {
		lines = append(lines, labelStyle.Render("Completed:  ")+" "+ui.FormatTimeAgo(*item.CompletedAt, now))
	}
	if len(item.Payload.Tags) > 0 {
		lines = append(lines, labelStyle.Render("Tags:       ")+" "+tagStyle.Render(todo.JoinList(item.Payload.Tags)))
	}
	if item.Payload.Priority != "" {
		rendered := string(item.Payload.Priority)
		if style, ok := priorityStyle[rendered]; ok {
			rendered = style.Render(rendered)
		}
		lines = append(lines, labelStyle.Render("Priority:   ")+" "+rendered)
	}
	if len(item.Payload.Attachments) > 0 {
		lines = append(lines, labelStyle.Render("Attachments:")+" "+todo.JoinList(item.Payload.Attachments))
	}
	if item.Payload.Notes != "" {
		lines = append(lines, "", labelStyle.Render("Notes:"))
		rendered := string(markdown.Render(m.paneWidth()-4, 0, []byte(item.Payload.Notes)))
		lines = append(lines, strings.TrimRight(rendered, "\n"))
	}
	for key := range item.Payload.Extra {
		lines = append(lines, valueMuted.Render("+ "+key))
	}
	return strings.Join(lines, "\n")
}

func (m todosModel) statusView() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return statusErrorStyle.Render(m.status)
	}
	return statusSuccessStyle.Render(m.status)
}

func (m todosModel) helpView() string {
	switch m.focus {
	case focusSearch:
		return valueMuted.Render("tab: switch field  enter: done  esc: back")
	case focusCreate, focusEdit:
		return valueMuted.Render("tab: next field  ctrl+s: save  esc: cancel")
	case focusConfirmDelete:
		return valueMuted.Render("y: delete  n: cancel")
	default:
		return valueMuted.Render("/: search  n: new  e: edit  x: toggle  d: delete  r: refresh  ctrl+l: logout  q: quit")
	}
}
