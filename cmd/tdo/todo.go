package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/eklerner/tdo/api"
	internalstrings "github.com/eklerner/tdo/internal/strings"
	"github.com/eklerner/tdo/todo"
)

// tdo list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listDescSearch    string
	listPayloadSearch string
	listJSON          bool
)

// tdo show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// tdo create
var createCmd = &cobra.Command{
	Use:   "create <description>",
	Short: "Create a new todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

var (
	createDue         string
	createTags        string
	createPriority    string
	createAttachments string
	createNotes       string
)

// tdo update
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var (
	updateDescription string
	updateDue         string
	updateTags        string
	updatePriority    string
	updateAttachments string
	updateNotes       string
)

// tdo done / undone
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark todos as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDone,
}

var undoneCmd = &cobra.Command{
	Use:   "undone <id>...",
	Short: "Mark todos as not completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUndone,
}

// tdo delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, createCmd, updateCmd, doneCmd, undoneCmd, deleteCmd)

	// list flags
	listCmd.Flags().StringVar(&listDescSearch, "desc", "", "Filter by description substring")
	listCmd.Flags().StringVar(&listPayloadSearch, "payload", "", "Filter by payload content")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	// show flags
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	// create flags
	createCmd.Flags().StringVar(&createDue, "due", "", "Due date (e.g. 2026-01-02 or 2026-01-02 15:04)")
	createCmd.Flags().StringVar(&createTags, "tags", "", "Comma-separated tags")
	createCmd.Flags().StringVarP(&createPriority, "priority", "p", "", "Priority (low, medium, high)")
	createCmd.Flags().StringVar(&createAttachments, "attachments", "", "Comma-separated attachment names")
	createCmd.Flags().StringVar(&createNotes, "notes", "", "Free-form notes (markdown)")
	_ = createCmd.MarkFlagRequired("due")

	// update flags
	addDescriptionFlagAliases(updateCmd)
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "New due date")
	updateCmd.Flags().StringVar(&updateTags, "tags", "", "Comma-separated tags")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "Priority (low, medium, high)")
	updateCmd.Flags().StringVar(&updateAttachments, "attachments", "", "Comma-separated attachment names")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "Free-form notes (markdown)")
}

func parseTodoID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", arg)
	}
	return id, nil
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	items, err := a.client.ListTodos(cmd.Context(), todo.Filter{
		Description: listDescSearch,
		Payload:     listPayloadSearch,
	})
	if err != nil {
		return err
	}

	if listJSON {
		return encodeJSONToStdout(items)
	}

	printTodoTable(items, a.config.UI.PriorityColors, time.Now())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	var items []todo.Todo
	for _, arg := range args {
		id, err := parseTodoID(arg)
		if err != nil {
			return err
		}
		item, err := a.client.GetTodo(cmd.Context(), id)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	if showJSON {
		return encodeJSONToStdout(items)
	}

	for i, item := range items {
		if i > 0 {
			fmt.Println("---")
		}
		printTodoDetail(item, a.config.UI.PriorityColors, time.Now())
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	description := internalstrings.NormalizeWhitespace(args[0])
	due, err := todo.ParseDueDate(createDue)
	if err != nil {
		return err
	}
	if err := todo.ValidateNew(description, due); err != nil {
		return err
	}

	payload, err := todo.PayloadFromForm(createTags, createPriority, createAttachments, createNotes)
	if err != nil {
		return err
	}

	request := api.CreateTodoRequest{Description: description, DueDate: due}
	if !payload.IsEmpty() {
		request.Payload = &payload
	}
	created, err := a.client.CreateTodo(cmd.Context(), request)
	if err != nil {
		return err
	}

	fmt.Printf("Created todo %d: %s\n", created.ID, created.Description)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	var update todo.Update

	// Only set fields that were explicitly provided
	if cmd.Flags().Changed("description") {
		if err := todo.ValidateDescription(updateDescription); err != nil {
			return err
		}
		update.SetDescription(updateDescription)
	}
	if cmd.Flags().Changed("due") {
		due, err := todo.ParseDueDate(updateDue)
		if err != nil {
			return err
		}
		update.SetDueDate(due)
	}
	if hasChangedFlags(cmd, "tags", "priority", "attachments", "notes") {
		current, err := a.client.GetTodo(cmd.Context(), id)
		if err != nil {
			return err
		}
		payload, err := mergePayloadFlags(cmd, current.Payload)
		if err != nil {
			return err
		}
		update.SetPayload(payload)
	}

	if update.IsZero() {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}

	updated, err := a.client.UpdateTodo(cmd.Context(), id, update)
	if err != nil {
		return err
	}

	fmt.Printf("Updated todo %d: %s\n", updated.ID, updated.Description)
	return nil
}

// mergePayloadFlags applies only the payload flags the user passed on top of
// the todo's current payload, so that updating tags does not wipe notes.
// Unrecognized keys ride along untouched.
func mergePayloadFlags(cmd *cobra.Command, current todo.Payload) (todo.Payload, error) {
	merged := current
	if cmd.Flags().Changed("tags") {
		merged.Tags = todo.SplitList(updateTags)
	}
	if cmd.Flags().Changed("priority") {
		priority := todo.Priority(updatePriority)
		if updatePriority != "" && !priority.IsValid() {
			return todo.Payload{}, todo.ErrInvalidPriority
		}
		merged.Priority = priority
	}
	if cmd.Flags().Changed("attachments") {
		merged.Attachments = todo.SplitList(updateAttachments)
	}
	if cmd.Flags().Changed("notes") {
		merged.Notes = updateNotes
	}
	return merged, nil
}

func runDone(cmd *cobra.Command, args []string) error {
	return setCompleted(cmd, args, true)
}

func runUndone(cmd *cobra.Command, args []string) error {
	return setCompleted(cmd, args, false)
}

func setCompleted(cmd *cobra.Command, args []string, completed bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	for _, arg := range args {
		id, err := parseTodoID(arg)
		if err != nil {
			return err
		}

		var update todo.Update
		update.SetCompleted(completed)
		updated, err := a.client.UpdateTodo(cmd.Context(), id, update)
		if err != nil {
			return err
		}

		state := "done"
		if !updated.Completed {
			state = "not done"
		}
		fmt.Printf("Marked todo %d %s: %s\n", updated.ID, state, updated.Description)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	for _, arg := range args {
		id, err := parseTodoID(arg)
		if err != nil {
			return err
		}
		if err := a.client.DeleteTodo(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted todo %d\n", id)
	}
	return nil
}
