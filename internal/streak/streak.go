package streak

import (
	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/completion"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/recurrence"
)

// DayState classifies one calendar day for streak purposes
type DayState int

const (
	// NothingScheduled days are stepped over: they neither extend nor break a streak.
	NothingScheduled DayState = iota
	Satisfied
	Unsatisfied
)

func (s DayState) String() string {
	switch s {
	case NothingScheduled:
		return "nothing_scheduled"
	case Satisfied:
		return "satisfied"
	case Unsatisfied:
		return "unsatisfied"
	default:
		return "unknown"
	}
}

// Summary is the streak picture as of a reference day
type Summary struct {
	Current       int
	Longest       int
	LastSatisfied calendar.Day // most recent day counted in Current; Invalid when Current is 0
	// Span is the number of calendar days the current streak covers, counting
	// the unscheduled days it bridges. Span >= Current.
	Span int
}

// StateOn reports whether every habit scheduled on day has a completed or
// skipped record.
func StateOn(habits []models.Habit, ix *completion.Index, day calendar.Day, frame calendar.Frame) DayState {
	scheduled := false
	for _, h := range habits {
		if !recurrence.IsActiveOn(h, day, frame) {
			continue
		}
		scheduled = true
		if !ix.Status(h.ID, day).Satisfied() {
			return Unsatisfied
		}
	}
	if !scheduled {
		return NothingScheduled
	}
	return Satisfied
}

// Current counts consecutive fully satisfied days ending at or immediately
// before reference. The reference day itself is still open: if it is not yet
// satisfied it is left out instead of ending the streak. Every earlier
// unsatisfied day ends the scan. The walk stops at the earliest habit start.
func Current(habits []models.Habit, completions []models.HabitCompletion, reference calendar.Day, frame calendar.Frame) int {
	return Calculate(habits, completions, reference, frame).Current
}

// Longest is the longest run of satisfied days up to and including reference,
// with the same day semantics as Current.
func Longest(habits []models.Habit, completions []models.HabitCompletion, reference calendar.Day, frame calendar.Frame) int {
	return Calculate(habits, completions, reference, frame).Longest
}

// Calculate computes the current and longest streak in one pass over a
// single completion index.
func Calculate(habits []models.Habit, completions []models.HabitCompletion, reference calendar.Day, frame calendar.Frame) Summary {
	return CalculateIndexed(habits, completion.NewIndex(completions), reference, frame)
}

// CalculateIndexed is Calculate over a prebuilt index.
func CalculateIndexed(habits []models.Habit, ix *completion.Index, reference calendar.Day, frame calendar.Frame) Summary {
	if !reference.IsValid() {
		return Summary{LastSatisfied: calendar.Invalid}
	}
	earliest, ok := recurrence.EarliestStart(habits, frame)
	if !ok || calendar.IsAfterDay(earliest, reference) {
		return Summary{LastSatisfied: calendar.Invalid}
	}

	states := make(map[string]DayState)
	stateOn := func(d calendar.Day) DayState {
		k := d.String()
		if s, ok := states[k]; ok {
			return s
		}
		s := StateOn(habits, ix, d, frame)
		states[k] = s
		return s
	}

	out := Summary{LastSatisfied: calendar.Invalid}

	// Backward scan for the current streak.
	for d := reference; !calendar.IsBeforeDay(d, earliest); d = d.AddDays(-1) {
		state := stateOn(d)
		if state == Unsatisfied {
			if calendar.IsSameDay(d, reference) {
				continue
			}
			break
		}
		if state == Satisfied {
			if out.Current == 0 {
				out.LastSatisfied = d
			}
			out.Current++
			if n, ok := calendar.DaysBetween(d, out.LastSatisfied); ok {
				out.Span = n + 1
			}
		}
	}

	// Forward scan for the longest run.
	run := 0
	for d := earliest; !calendar.IsAfterDay(d, reference); d = d.AddDays(1) {
		switch stateOn(d) {
		case Satisfied:
			run++
			if run > out.Longest {
				out.Longest = run
			}
		case Unsatisfied:
			if !calendar.IsSameDay(d, reference) {
				run = 0
			}
		}
	}
	if out.Current > out.Longest {
		out.Longest = out.Current
	}

	return out
}
