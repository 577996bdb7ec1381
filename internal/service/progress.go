package service

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/completion"
	"github.com/julianstephens/habitcore/internal/logger"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/recurrence"
)

// Outcome is a saved completion and the refresh it triggered
type Outcome struct {
	Habit      models.Habit
	Completion models.HabitCompletion
	Refresh    Refresh
}

type recordFunc func(h models.Habit, existing *models.HabitCompletion, day calendar.Day, now time.Time) models.HabitCompletion

// LogProgress adds delta to the habit's value on day ("" = today).
func (s *Service) LogProgress(userID, habitName, day string, delta float64) (Outcome, error) {
	return s.write(userID, habitName, day, func(h models.Habit, existing *models.HabitCompletion, d calendar.Day, now time.Time) models.HabitCompletion {
		return completion.Record(h, existing, d, delta, now)
	})
}

// Skip marks the habit skipped on day ("" = today)
func (s *Service) Skip(userID, habitName, day string) (Outcome, error) {
	return s.write(userID, habitName, day, completion.Skip)
}

// Toggle flips the habit between completed and not started on day ("" = today)
func (s *Service) Toggle(userID, habitName, day string) (Outcome, error) {
	return s.write(userID, habitName, day, completion.Toggle)
}

func (s *Service) write(userID, habitName, dayInput string, fn recordFunc) (Outcome, error) {
	_, frame, err := s.userFrame(userID)
	if err != nil {
		return Outcome{}, err
	}
	day, err := s.resolveDay(dayInput, frame)
	if err != nil {
		return Outcome{}, err
	}
	h, err := s.Habit(userID, habitName)
	if err != nil {
		return Outcome{}, err
	}
	if !recurrence.IsActiveOn(h, day, frame) {
		logger.Debug("Recording on an unscheduled day", "habit", h.Name, "day", day.String())
	}

	var existing *models.HabitCompletion
	prev, err := s.store.GetCompletion(h.ID, day.String())
	switch {
	case err == nil:
		existing = &prev
	case !isNotFound(err):
		return Outcome{}, fmt.Errorf("failed to load completion: %w", err)
	}

	now := s.now()
	rec := fn(h, existing, day, now)
	if rec.ID == "" {
		rec.ID = s.newID()
	}
	if err := s.store.UpsertCompletion(rec); err != nil {
		logger.Error("Failed to save completion", "habit", h.Name, "day", day.String(), "error", err)
		return Outcome{}, err
	}

	refresh, err := s.Refresh(userID)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Habit: h, Completion: rec, Refresh: refresh}, nil
}

// DueHabit is one scheduled habit with its state for the day
type DueHabit struct {
	Habit    models.Habit
	Result   completion.Result
	Progress string
	Ratio    float64
}

// DueHabits lists the habits scheduled on day ("" = today) with their
// resolved completion state.
func (s *Service) DueHabits(userID, day string) (calendar.Day, []DueHabit, error) {
	_, frame, err := s.userFrame(userID)
	if err != nil {
		return calendar.Invalid, nil, err
	}
	d, err := s.resolveDay(day, frame)
	if err != nil {
		return calendar.Invalid, nil, err
	}

	habits, err := s.store.GetHabitsForUser(userID)
	if err != nil {
		return calendar.Invalid, nil, err
	}
	completions, err := s.store.GetCompletionsForUser(userID, d.String(), d.String())
	if err != nil {
		return calendar.Invalid, nil, err
	}
	ix := completion.NewIndex(completions)

	var out []DueHabit
	for _, h := range recurrence.ActiveHabits(habits, d, frame) {
		res, ok := ix.Lookup(h.ID, d)
		if !ok {
			res = completion.Result{Status: models.StatusNotStarted}
		}
		out = append(out, DueHabit{
			Habit:    h,
			Result:   res,
			Progress: completion.ProgressText(h, res.Value),
			Ratio:    completion.ProgressRatio(h, res.Value),
		})
	}
	return d, out, nil
}
