package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/eklerner/tdo/internal/markdown"
	"github.com/eklerner/tdo/internal/ui"
	"github.com/eklerner/tdo/todo"
)

const todoDetailLineWidth = 80

// printTodoDetail prints detailed information about a todo.
func printTodoDetail(item todo.Todo, colors bool, now time.Time) {
	fmt.Printf("ID:          %d\n", item.ID)
	fmt.Printf("Description: %s\n", ui.StrikeCompleted(item.Description, item.Completed))
	fmt.Printf("Done:        %s\n", ui.Checkbox(item.Completed))
	fmt.Printf("Due:         %s\n", item.DueDate.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Created:     %s (%s)\n",
		item.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		ui.FormatTimeAgo(item.CreatedAt, now))

	if item.CompletedAt != nil {
		fmt.Printf("Completed:   %s\n", item.CompletedAt.Local().Format("2006-01-02 15:04:05"))
	}

	if len(item.Payload.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", todo.JoinList(item.Payload.Tags))
	}
	if item.Payload.Priority != "" {
		fmt.Printf("Priority:    %s\n", ui.PriorityBadge(item.Payload.Priority, colors))
	}
	if len(item.Payload.Attachments) > 0 {
		fmt.Printf("Attachments: %s\n", todo.JoinList(item.Payload.Attachments))
	}

	if item.Payload.Notes != "" {
		fmt.Printf("\nNotes:\n%s\n", formatTodoNotes(item.Payload.Notes))
	}

	// Unrecognized payload keys are preserved but not rendered; list them
	// so nothing attached to the todo is invisible.
	if len(item.Payload.Extra) > 0 {
		keys := make([]string, 0, len(item.Payload.Extra))
		for key := range item.Payload.Extra {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fmt.Printf("Other keys:  %s\n", strings.Join(keys, ", "))
	}
}

func formatTodoNotes(value string) string {
	rendered := string(markdown.Render(todoDetailLineWidth, 2, []byte(value)))
	if strings.TrimSpace(rendered) == "" {
		return "-"
	}
	return strings.TrimRight(rendered, "\n")
}
