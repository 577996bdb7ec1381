package recurrence

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/models"
)

// IsActiveOn determines if a habit is scheduled on the given day. The start
// and end bounds are resolved in the same frame as day; the caller chooses
// the frame and must use it consistently.
func IsActiveOn(habit models.Habit, day calendar.Day, frame calendar.Frame) bool {
	if !habit.IsActive || !day.IsValid() {
		return false
	}

	start := calendar.Normalize(habit.StartDate, frame)
	if !start.IsValid() || calendar.IsBeforeDay(day, start) {
		return false
	}

	if habit.EndDate != "" {
		end := calendar.Normalize(habit.EndDate, frame)
		// An unreadable end date closes the habit rather than leaving it open forever.
		if !end.IsValid() || calendar.IsAfterDay(day, end) {
			return false
		}
	}

	switch habit.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		wd := day.Weekday()
		for _, d := range habit.DaysOfWeek {
			if d == wd {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ActiveHabits returns the habits scheduled on day, ordered by ID so the
// result does not depend on input order.
func ActiveHabits(habits []models.Habit, day calendar.Day, frame calendar.Frame) []models.Habit {
	var active []models.Habit
	for _, h := range habits {
		if IsActiveOn(h, day, frame) {
			active = append(active, h)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})
	return active
}

// DueTomorrow returns the habits scheduled on the day after now, where
// "tomorrow" is taken in frame (normally the user's timezone).
func DueTomorrow(habits []models.Habit, now time.Time, frame calendar.Frame) (calendar.Day, []models.Habit) {
	tomorrow := calendar.TodayAt(frame, now).AddDays(1)
	return tomorrow, ActiveHabits(habits, tomorrow, frame)
}

// EarliestStart returns the earliest valid start date among habits.
func EarliestStart(habits []models.Habit, frame calendar.Frame) (calendar.Day, bool) {
	earliest := calendar.Invalid
	for _, h := range habits {
		start := calendar.Normalize(h.StartDate, frame)
		if !start.IsValid() {
			continue
		}
		if !earliest.IsValid() || calendar.IsBeforeDay(start, earliest) {
			earliest = start
		}
	}
	return earliest, earliest.IsValid()
}

// Describe formats a habit's recurrence rule into a human-readable string
func Describe(habit models.Habit) string {
	var rule string
	switch habit.Frequency {
	case models.FrequencyDaily:
		rule = "daily"
	case models.FrequencyWeekly:
		if len(habit.DaysOfWeek) == 0 {
			rule = "weekly (no days)"
			break
		}
		days := append([]time.Weekday(nil), habit.DaysOfWeek...)
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
		names := make([]string, 0, len(days))
		for _, wd := range days {
			if wd < time.Sunday || wd > time.Saturday {
				continue
			}
			names = append(names, wd.String()[:3])
		}
		rule = fmt.Sprintf("weekly on %s", strings.Join(names, ","))
	default:
		rule = "unknown"
	}

	if habit.EndDate != "" {
		return fmt.Sprintf("%s from %s to %s", rule, habit.StartDate, habit.EndDate)
	}
	return fmt.Sprintf("%s from %s", rule, habit.StartDate)
}
