package todo

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrEmptyDescription is returned when a new todo has no description.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrMissingDueDate is returned when a new todo has no due date.
	ErrMissingDueDate = errors.New("due date is required")

	// ErrInvalidPriority is returned when a priority is not low, medium, or high.
	ErrInvalidPriority = errors.New("priority must be low, medium, or high")

	// ErrInvalidDueDate is returned when a due date input cannot be parsed.
	ErrInvalidDueDate = errors.New("invalid due date")
)

// ValidateNew checks the client-side requirements for creating a todo.
// Violations block the request entirely; nothing reaches the service.
func ValidateNew(description string, due time.Time) error {
	if err := ValidateDescription(description); err != nil {
		return err
	}
	if due.IsZero() {
		return ErrMissingDueDate
	}
	return nil
}

// ValidateDescription checks a description, either for a new todo or as the
// replacement value in a partial update.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// dueDateLayouts are the accepted due date input formats, most specific
// first. Dates without a time component are due at midnight local time.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDueDate parses a due date from user input.
func ParseDueDate(input string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return time.Time{}, ErrMissingDueDate
	}
	for _, layout := range dueDateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidDueDate
}
