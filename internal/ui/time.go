package ui

import (
	"fmt"
	"time"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	if then.IsZero() {
		return "-"
	}
	return FormatDurationShort(now.Sub(then)) + " ago"
}

// FormatDue formats time remaining until a due date: "2h" when ahead,
// "3d over" when past.
func FormatDue(remaining time.Duration) string {
	if remaining < 0 {
		return FormatDurationShort(-remaining) + " over"
	}
	return FormatDurationShort(remaining)
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}
