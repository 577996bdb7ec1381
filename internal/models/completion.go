package models

import (
	"fmt"
	"strings"
	"time"
)

// CompletionStatus is the state of a habit on one calendar day
type CompletionStatus string

const (
	StatusNotStarted CompletionStatus = "not_started"
	StatusInProgress CompletionStatus = "in_progress"
	StatusCompleted  CompletionStatus = "completed"
	StatusSkipped    CompletionStatus = "skipped"
)

func (s CompletionStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	default:
		return false
	}
}

// Satisfied reports whether the status counts toward a streak
func (s CompletionStatus) Satisfied() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// ParseCompletionStatus parses a status name, case-insensitive
func ParseCompletionStatus(input string) (CompletionStatus, error) {
	s := CompletionStatus(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid completion status: %q", input)
	}
	return s, nil
}

// HabitCompletion is the progress recorded for a habit on one day
type HabitCompletion struct {
	ID             string           `json:"id"`
	HabitID        string           `json:"habit_id"`
	CompletionDate string           `json:"completion_date"` // YYYY-MM-DD format
	Value          float64          `json:"value"`
	Status         CompletionStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
