package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/eklerner/tdo/internal/ui"
	"github.com/eklerner/tdo/todo"
)

// printTodoTable prints todos in a table format.
func printTodoTable(todos []todo.Todo, colors bool, now time.Time) {
	if len(todos) == 0 {
		fmt.Println("No todos found.")
		return
	}

	fmt.Print(formatTodoTable(todos, colors, now))
}

func formatTodoTable(todos []todo.Todo, colors bool, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "DONE", "PRI", "DUE", "AGE", "DESCRIPTION"}, len(todos))

	for _, item := range todos {
		description := ui.TruncateTableCell(item.Description)
		description = ui.StrikeCompleted(description, item.Completed)
		builder.AddRow([]string{
			strconv.FormatInt(item.ID, 10),
			ui.Checkbox(item.Completed),
			ui.PriorityBadge(item.Payload.Priority, colors),
			formatTodoDue(item, now),
			formatTodoAge(item, now),
			description,
		})
	}

	return builder.String()
}

func formatTodoDue(item todo.Todo, now time.Time) string {
	remaining, ok := todo.DueData(item, now)
	if !ok || item.Completed {
		return "-"
	}
	return ui.FormatDue(remaining)
}

func formatTodoAge(item todo.Todo, now time.Time) string {
	age, ok := todo.AgeData(item, now)
	if !ok {
		return "-"
	}
	return ui.FormatDurationShort(age)
}
