package models

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is how often a habit recurs
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return true
	default:
		return false
	}
}

// ParseFrequency parses a frequency name, case-insensitive
func ParseFrequency(input string) (Frequency, error) {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid frequency: %q", input)
	}
	return f, nil
}

// HabitType is the polarity of a habit
type HabitType string

const (
	HabitTypeGood HabitType = "GOOD"
	HabitTypeBad  HabitType = "BAD"
)

func (t HabitType) IsValid() bool {
	return t == HabitTypeGood || t == HabitTypeBad
}

// ParseHabitType parses a habit polarity ("good"/"bad"), case-insensitive
func ParseHabitType(input string) (HabitType, error) {
	t := HabitType(strings.TrimSpace(strings.ToUpper(input)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid habit type: %q", input)
	}
	return t, nil
}

// Habit is a recurring activity definition
type Habit struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	Name              string         `json:"name"`
	Frequency         Frequency      `json:"frequency"`
	DaysOfWeek        []time.Weekday `json:"days_of_week,omitempty"` // 0=Sunday .. 6=Saturday
	StartDate         string         `json:"start_date"`             // YYYY-MM-DD, inclusive
	EndDate           string         `json:"end_date,omitempty"`     // YYYY-MM-DD, inclusive; empty = open ended
	IsActive          bool           `json:"is_active"`
	GoalValue         *float64       `json:"goal_value,omitempty"`
	GoalUnit          string         `json:"goal_unit,omitempty"`
	CompletionsPerDay *float64       `json:"completions_per_day,omitempty"`
	Category          Category       `json:"category"`
	Type              HabitType      `json:"type"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// HabitPatch holds a partial update; nil fields are left untouched.
// ClearEndDate removes an end date (EndDate cannot express that on its own).
type HabitPatch struct {
	Name              *string
	Frequency         *Frequency
	DaysOfWeek        []time.Weekday
	StartDate         *string
	EndDate           *string
	ClearEndDate      bool
	IsActive          *bool
	GoalValue         *float64
	GoalUnit          *string
	CompletionsPerDay *float64
	Category          *Category
	Type              *HabitType
}

// Apply returns a copy of h with the patch applied. h itself is not modified.
func (h Habit) Apply(p HabitPatch, now time.Time) Habit {
	out := h
	out.DaysOfWeek = append([]time.Weekday(nil), h.DaysOfWeek...)

	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Frequency != nil {
		out.Frequency = *p.Frequency
	}
	if p.DaysOfWeek != nil {
		out.DaysOfWeek = append([]time.Weekday(nil), p.DaysOfWeek...)
	}
	if p.StartDate != nil {
		out.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		out.EndDate = *p.EndDate
	}
	if p.ClearEndDate {
		out.EndDate = ""
	}
	if p.IsActive != nil {
		out.IsActive = *p.IsActive
	}
	if p.GoalValue != nil {
		v := *p.GoalValue
		out.GoalValue = &v
	}
	if p.GoalUnit != nil {
		out.GoalUnit = *p.GoalUnit
	}
	if p.CompletionsPerDay != nil {
		v := *p.CompletionsPerDay
		out.CompletionsPerDay = &v
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	out.UpdatedAt = now
	return out
}

// Validate checks the fields a stored habit must have. The engine itself
// tolerates invalid habits (they are simply never active).
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if !h.Frequency.IsValid() {
		return fmt.Errorf("invalid frequency: %q", h.Frequency)
	}
	if h.Frequency == FrequencyWeekly && len(h.DaysOfWeek) == 0 {
		return fmt.Errorf("weekdays must be specified for weekly frequency")
	}
	for _, wd := range h.DaysOfWeek {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid weekday: %d", wd)
		}
	}
	if _, err := time.Parse("2006-01-02", h.StartDate); err != nil {
		return fmt.Errorf("invalid start date (expected YYYY-MM-DD): %w", err)
	}
	if h.EndDate != "" {
		if _, err := time.Parse("2006-01-02", h.EndDate); err != nil {
			return fmt.Errorf("invalid end date (expected YYYY-MM-DD): %w", err)
		}
		if h.EndDate < h.StartDate {
			return fmt.Errorf("end date %s is before start date %s", h.EndDate, h.StartDate)
		}
	}
	if h.GoalValue != nil && *h.GoalValue < 0 {
		return fmt.Errorf("goal value cannot be negative")
	}
	if !h.Category.IsValid() {
		return fmt.Errorf("invalid category: %q", h.Category)
	}
	if !h.Type.IsValid() {
		return fmt.Errorf("invalid habit type: %q", h.Type)
	}
	return nil
}
