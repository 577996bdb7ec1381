package models

import "time"

// NotificationKind distinguishes milestone payloads from daily reminders
type NotificationKind string

const (
	NotificationMilestone NotificationKind = "milestone"
	NotificationReminder  NotificationKind = "reminder"
	NotificationSummary   NotificationKind = "summary"
)

// Notification is a scheduled payload handed to the delivery boundary
type Notification struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	HabitID      string           `json:"habit_id,omitempty"` // empty for streak/summary payloads
	Kind         NotificationKind `json:"kind"`
	Title        string           `json:"title"`
	Body         string           `json:"body"`
	ScheduledFor time.Time        `json:"scheduled_for"`
	Processed    bool             `json:"processed"`
	CreatedAt    time.Time        `json:"created_at"`
}
