package todo

import (
	"errors"
	"testing"
	"time"
)

func TestValidateNew(t *testing.T) {
	due := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		description string
		due         time.Time
		wantErr     error
	}{
		{"valid", "draft notes", due, nil},
		{"empty description", "", due, ErrEmptyDescription},
		{"whitespace description", "   ", due, ErrEmptyDescription},
		{"missing due date", "draft notes", time.Time{}, ErrMissingDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNew(tt.description, tt.due)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateNew = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr error
	}{
		{"2026-04-01T09:30", time.Date(2026, 4, 1, 9, 30, 0, 0, time.Local), nil},
		{"2026-04-01 09:30", time.Date(2026, 4, 1, 9, 30, 0, 0, time.Local), nil},
		{"2026-04-01", time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local), nil},
		{"", time.Time{}, ErrMissingDueDate},
		{"next tuesday", time.Time{}, ErrInvalidDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDueDate(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("ParseDueDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
