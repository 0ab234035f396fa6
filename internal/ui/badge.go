package ui

import (
	"os"

	"golang.org/x/term"

	"github.com/eklerner/tdo/todo"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiStrike = "\x1b[9m"
	ansiDim    = "\x1b[2m"
	ansiReset  = "\x1b[0m"
)

// Checkbox renders a completion marker.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// PriorityBadge returns a colored priority label, plain when color is
// disabled or the priority is unset.
func PriorityBadge(priority todo.Priority, colors bool) string {
	if priority == "" {
		return "-"
	}
	if !colors || !ansiEnabled() {
		return string(priority)
	}
	switch priority {
	case todo.PriorityHigh:
		return ansiRed + string(priority) + ansiReset
	case todo.PriorityMedium:
		return ansiYellow + string(priority) + ansiReset
	case todo.PriorityLow:
		return ansiGreen + string(priority) + ansiReset
	default:
		return string(priority)
	}
}

// StrikeCompleted crosses out text for completed todos when the terminal
// supports it.
func StrikeCompleted(text string, completed bool) string {
	if !completed || !ansiEnabled() {
		return text
	}
	return ansiStrike + ansiDim + text + ansiReset
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
