package completion

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/habitcore/internal/models"
)

// EffectiveGoal is goal_value, else completions_per_day, else 1.
// A goal of zero or less counts as 1.
func EffectiveGoal(habit models.Habit) float64 {
	goal := 1.0
	switch {
	case habit.GoalValue != nil:
		goal = *habit.GoalValue
	case habit.CompletionsPerDay != nil:
		goal = *habit.CompletionsPerDay
	}
	if goal <= 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		return 1
	}
	return goal
}

// ProgressRatio is value/goal capped to [0, 1]. Use IsOverachieved to detect
// value > goal; the ratio never shows it.
func ProgressRatio(habit models.Habit, value float64) float64 {
	if value <= 0 || math.IsNaN(value) {
		return 0
	}
	return math.Min(value/EffectiveGoal(habit), 1)
}

// IsOverachieved reports whether value exceeds the effective goal
func IsOverachieved(habit models.Habit, value float64) bool {
	return value > EffectiveGoal(habit)
}

// ProgressText formats progress as "{value}/{goal} {unit}", or
// "{value}/{goal}" when the habit has no unit.
func ProgressText(habit models.Habit, value float64) string {
	if value < 0 || math.IsNaN(value) {
		value = 0
	}
	goal := EffectiveGoal(habit)
	unit := strings.TrimSpace(habit.GoalUnit)
	if unit == "" {
		return fmt.Sprintf("%s/%s", formatNumber(value), formatNumber(goal))
	}
	return fmt.Sprintf("%s/%s %s", formatNumber(value), formatNumber(goal), unit)
}

// StatusFor derives the status a non-skipped record with this value has
func StatusFor(habit models.Habit, value float64) models.CompletionStatus {
	switch {
	case value <= 0:
		return models.StatusNotStarted
	case value < EffectiveGoal(habit):
		return models.StatusInProgress
	default:
		return models.StatusCompleted
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
