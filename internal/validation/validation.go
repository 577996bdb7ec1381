// Package validation checks stored habits and completions for records the
// engine would silently ignore or resolve.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/completion"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/recurrence"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidHabit        ConflictType = "invalid_habit"
	ConflictDuplicateHabitName  ConflictType = "duplicate_habit_name"
	ConflictInvalidCompletion   ConflictType = "invalid_completion"
	ConflictDuplicateCompletion ConflictType = "duplicate_completion"
	ConflictUnknownHabit        ConflictType = "unknown_habit"
	ConflictUnscheduledDay      ConflictType = "unscheduled_day"
)

// Conflict is one problem found in the records
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD, when the conflict is about a day
	HabitIDs    []string // habits involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Count returns how many conflicts have type t
func (r *Result) Count(t ConflictType) int {
	n := 0
	for _, c := range r.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

func (r *Result) add(c Conflict) {
	r.Conflicts = append(r.Conflicts, c)
}

// Validate checks habits on their own and completions against them. Day
// checks use frame.
func Validate(habits []models.Habit, completions []models.HabitCompletion, frame calendar.Frame) Result {
	var r Result
	validateHabits(&r, habits)
	validateCompletions(&r, habits, completions, frame)
	return r
}

func validateHabits(r *Result, habits []models.Habit) {
	byName := make(map[string][]models.Habit)
	for _, h := range habits {
		if err := h.Validate(); err != nil {
			r.add(Conflict{
				Type:        ConflictInvalidHabit,
				Description: fmt.Sprintf("Habit %q is invalid and is never scheduled: %v", h.Name, err),
				HabitIDs:    []string{h.ID},
			})
		}
		key := strings.ToLower(strings.TrimSpace(h.Name))
		byName[key] = append(byName[key], h)
	}

	names := make([]string, 0, len(byName))
	for k := range byName {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		group := byName[k]
		if len(group) < 2 {
			continue
		}
		ids := make([]string, 0, len(group))
		for _, h := range group {
			ids = append(ids, h.ID)
		}
		r.add(Conflict{
			Type:        ConflictDuplicateHabitName,
			Description: fmt.Sprintf("%d habits share the name %q (ignoring case)", len(group), group[0].Name),
			HabitIDs:    ids,
		})
	}
}

func validateCompletions(r *Result, habits []models.Habit, completions []models.HabitCompletion, frame calendar.Frame) {
	byID := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	for _, c := range completions {
		h, known := byID[c.HabitID]
		if !known {
			r.add(Conflict{
				Type:        ConflictUnknownHabit,
				Description: fmt.Sprintf("Completion %s refers to unknown habit %s", c.ID, c.HabitID),
				Date:        c.CompletionDate,
				HabitIDs:    []string{c.HabitID},
			})
			continue
		}

		day := calendar.Normalize(c.CompletionDate, frame)
		switch {
		case !day.IsValid():
			r.add(Conflict{
				Type:        ConflictInvalidCompletion,
				Description: fmt.Sprintf("%s: completion has an invalid date %q", h.Name, c.CompletionDate),
				Date:        c.CompletionDate,
				HabitIDs:    []string{h.ID},
			})
			continue
		case !c.Status.IsValid():
			r.add(Conflict{
				Type:        ConflictInvalidCompletion,
				Description: fmt.Sprintf("%s on %s: unknown status %q counts as not done", h.Name, day, c.Status),
				Date:        day.String(),
				HabitIDs:    []string{h.ID},
			})
		case c.Value < 0:
			r.add(Conflict{
				Type:        ConflictInvalidCompletion,
				Description: fmt.Sprintf("%s on %s: negative value %g", h.Name, day, c.Value),
				Date:        day.String(),
				HabitIDs:    []string{h.ID},
			})
		}

		if !recurrence.IsActiveOn(h, day, frame) {
			r.add(Conflict{
				Type:        ConflictUnscheduledDay,
				Description: fmt.Sprintf("%s on %s: recorded on a day the habit is not scheduled, it is ignored", h.Name, day),
				Date:        day.String(),
				HabitIDs:    []string{h.ID},
			})
		}
	}

	for _, k := range completion.NewIndex(completions).Duplicates() {
		name := k.HabitID
		if h, ok := byID[k.HabitID]; ok {
			name = h.Name
		}
		r.add(Conflict{
			Type:        ConflictDuplicateCompletion,
			Description: fmt.Sprintf("%s on %s: more than one record, the most recently created is used", name, k.Day),
			Date:        k.Day,
			HabitIDs:    []string{k.HabitID},
		})
	}
}
