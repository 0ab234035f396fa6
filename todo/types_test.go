package todo

import (
	"testing"
	"time"
)

func TestPriority_IsValid(t *testing.T) {
	tests := []struct {
		priority Priority
		valid    bool
	}{
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{Priority("urgent"), false},
		{Priority(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			if got := tt.priority.IsValid(); got != tt.valid {
				t.Errorf("Priority(%q).IsValid() = %v, want %v", tt.priority, got, tt.valid)
			}
		})
	}
}

func TestAgeData(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	item := Todo{CreatedAt: now.Add(-90 * time.Minute)}
	age, ok := AgeData(item, now)
	if !ok {
		t.Fatal("expected age data")
	}
	if age != 90*time.Minute {
		t.Errorf("age = %v, want %v", age, 90*time.Minute)
	}

	if _, ok := AgeData(Todo{}, now); ok {
		t.Error("expected no age data for zero created_at")
	}
}

func TestDueData(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		due       time.Time
		ok        bool
		remaining time.Duration
	}{
		{"future", now.Add(2 * time.Hour), true, 2 * time.Hour},
		{"past", now.Add(-time.Hour), true, -time.Hour},
		{"unset", time.Time{}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining, ok := DueData(Todo{DueDate: tt.due}, now)
			if ok != tt.ok {
				t.Fatalf("DueData ok = %v, want %v", ok, tt.ok)
			}
			if remaining != tt.remaining {
				t.Errorf("remaining = %v, want %v", remaining, tt.remaining)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		item    Todo
		overdue bool
	}{
		{"past due", Todo{DueDate: now.Add(-time.Minute)}, true},
		{"not yet due", Todo{DueDate: now.Add(time.Minute)}, false},
		{"completed past due", Todo{DueDate: now.Add(-time.Minute), Completed: true}, false},
		{"no due date", Todo{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.item, now); got != tt.overdue {
				t.Errorf("IsOverdue = %v, want %v", got, tt.overdue)
			}
		})
	}
}
