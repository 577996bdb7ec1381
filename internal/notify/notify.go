// Package notify builds notification payloads. Delivery is someone else's job.
package notify

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/completion"
	"github.com/julianstephens/habitcore/internal/constants"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/recurrence"
)

// ParseClock parses an HH:MM time of day into minutes after midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Milestones returns one payload per newly unlocked milestone, in ascending
// order. IDs are left for the caller to assign.
func Milestones(userID string, newlyUnlocked []int, currentStreak int, at time.Time, t Templates) []models.Notification {
	if len(newlyUnlocked) == 0 {
		return nil
	}
	sorted := append([]int(nil), newlyUnlocked...)
	sort.Ints(sorted)

	t = t.WithDefaults()
	out := make([]models.Notification, 0, len(sorted))
	for _, m := range sorted {
		v := Vars{Milestone: m, Count: currentStreak}
		out = append(out, models.Notification{
			UserID:       userID,
			Kind:         models.NotificationMilestone,
			Title:        Render(t.MilestoneTitle, v),
			Body:         Render(t.MilestoneBody, v),
			ScheduledFor: at,
			CreatedAt:    at,
		})
	}
	return out
}

// Reminders returns one payload per habit scheduled tomorrow in frame, timed
// at reminderTime on that day, followed by a summary of today's progress
// when anything was scheduled today.
func Reminders(userID string, habits []models.Habit, completions []models.HabitCompletion, now time.Time, frame calendar.Frame, reminderTime string, t Templates) ([]models.Notification, error) {
	minutes, err := ParseClock(reminderTime)
	if err != nil {
		return nil, err
	}
	t = t.WithDefaults()

	tomorrow, due := recurrence.DueTomorrow(habits, now, frame)
	at := tomorrow.At(minutes, frame)

	var out []models.Notification
	for _, h := range due {
		v := Vars{Habit: h.Name}
		out = append(out, models.Notification{
			UserID:       userID,
			HabitID:      h.ID,
			Kind:         models.NotificationReminder,
			Title:        Render(t.ReminderTitle, v),
			Body:         Render(t.ReminderBody, v),
			ScheduledFor: at,
			CreatedAt:    now,
		})
	}

	if s, ok := Summary(userID, habits, completions, now, frame, t); ok {
		out = append(out, s)
	}
	return out, nil
}

// Summary reports how many of today's scheduled habits are done. ok is
// false when nothing is scheduled today.
func Summary(userID string, habits []models.Habit, completions []models.HabitCompletion, now time.Time, frame calendar.Frame, t Templates) (models.Notification, bool) {
	today := calendar.TodayAt(frame, now)
	active := recurrence.ActiveHabits(habits, today, frame)
	if len(active) == 0 {
		return models.Notification{}, false
	}

	ix := completion.NewIndex(completions)
	done := 0
	for _, h := range active {
		if ix.Status(h.ID, today).Satisfied() {
			done++
		}
	}

	t = t.WithDefaults()
	v := Vars{Count: done, Total: len(active), Remaining: len(active) - done}
	return models.Notification{
		UserID:       userID,
		Kind:         models.NotificationSummary,
		Title:        Render(t.SummaryTitle, v),
		Body:         Render(t.SummaryBody, v),
		ScheduledFor: now,
		CreatedAt:    now,
	}, true
}
