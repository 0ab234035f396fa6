// Package todo defines the task domain model shared by the API client, the
// CLI, and the TUI.
//
// Todos live on a remote service; this package describes their shape and the
// documents the client exchanges with that service:
//   - Todo, the full representation the service returns
//   - Update, the partial-update document the client sends
//   - Payload, the open-ended structured data attached to each todo
//   - Filter, the listing criteria forwarded as query parameters
//
// The service is the sole authority on identifiers and timestamps; the
// client never computes them.
package todo

import "time"

// Todo represents a single task as stored by the service.
type Todo struct {
	// ID is assigned by the service and never changes.
	ID int64 `json:"id"`

	// Description is the task text. Never empty on a stored todo.
	Description string `json:"description"`

	// DueDate is when the task is due.
	DueDate time.Time `json:"due_date"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed"`

	// CompletedAt is set by the service when Completed becomes true
	// (nil while the todo is open).
	CompletedAt *time.Time `json:"completed_at"`

	// CreatedAt is assigned by the service at creation.
	CreatedAt time.Time `json:"created_at"`

	// Payload is the structured data attached to the task. May be empty.
	Payload Payload `json:"payload"`
}

// Priority is the conventional priority level stored in a payload.
type Priority string

const (
	// PriorityLow marks a task that can wait.
	PriorityLow Priority = "low"

	// PriorityMedium is the middle level.
	PriorityMedium Priority = "medium"

	// PriorityHigh marks an urgent task.
	PriorityHigh Priority = "high"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// AgeData computes the display age and whether timing data exists.
func AgeData(item Todo, now time.Time) (time.Duration, bool) {
	if item.CreatedAt.IsZero() {
		return 0, false
	}
	age := now.Sub(item.CreatedAt)
	if age < 0 {
		age = 0
	}
	return age, true
}

// DueData returns the time remaining until the todo's due date and whether
// one is set. Negative durations mean the due date has passed.
func DueData(item Todo, now time.Time) (time.Duration, bool) {
	if item.DueDate.IsZero() {
		return 0, false
	}
	return item.DueDate.Sub(now), true
}

// IsOverdue reports whether an incomplete todo is past its due date.
func IsOverdue(item Todo, now time.Time) bool {
	if item.Completed {
		return false
	}
	remaining, ok := DueData(item, now)
	return ok && remaining < 0
}
