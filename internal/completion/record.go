package completion

import (
	"time"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/models"
)

// The functions below never modify their inputs. They return the record the
// caller should persist; ID is carried over from existing and left empty for
// a new record so the caller can assign one.

func base(habit models.Habit, existing *models.HabitCompletion, day calendar.Day, now time.Time) models.HabitCompletion {
	if existing != nil {
		out := *existing
		out.UpdatedAt = now
		return out
	}
	return models.HabitCompletion{
		HabitID:        habit.ID,
		CompletionDate: day.String(),
		Status:         models.StatusNotStarted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Record adds delta to the day's accumulated value and re-derives the
// status. The value never drops below zero. Recording progress on a skipped
// day un-skips it.
func Record(habit models.Habit, existing *models.HabitCompletion, day calendar.Day, delta float64, now time.Time) models.HabitCompletion {
	out := base(habit, existing, day, now)
	out.Value += delta
	if out.Value < 0 || out.Value != out.Value {
		out.Value = 0
	}
	out.Status = StatusFor(habit, out.Value)
	return out
}

// Skip marks the day as skipped, keeping any recorded value.
func Skip(habit models.Habit, existing *models.HabitCompletion, day calendar.Day, now time.Time) models.HabitCompletion {
	out := base(habit, existing, day, now)
	out.Status = models.StatusSkipped
	return out
}

// Toggle flips a boolean-style habit: completed becomes not_started with a
// zero value, anything else becomes completed at exactly the goal.
func Toggle(habit models.Habit, existing *models.HabitCompletion, day calendar.Day, now time.Time) models.HabitCompletion {
	out := base(habit, existing, day, now)
	if existing != nil && existing.Status == models.StatusCompleted {
		out.Value = 0
		out.Status = models.StatusNotStarted
		return out
	}
	out.Value = EffectiveGoal(habit)
	out.Status = models.StatusCompleted
	return out
}
