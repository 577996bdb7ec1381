// Package engine evaluates a user's habit snapshot in one call: streak,
// milestone transition and balance scores over a single completion index.
package engine

import (
	"fmt"

	"github.com/julianstephens/habitcore/internal/achievement"
	"github.com/julianstephens/habitcore/internal/balance"
	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/completion"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/streak"
)

// Version identifies the scoring rules. Persisted results record it so a
// rule change can be detected.
const Version = "1"

// Config bundles the tunables of every component
type Config struct {
	Balance    balance.Config
	Milestones []int
}

// DefaultConfig returns the built-in tunables
func DefaultConfig() Config {
	return Config{
		Balance:    balance.DefaultConfig(),
		Milestones: achievement.DefaultThresholds(),
	}
}

func (c Config) Validate() error {
	if err := c.Balance.Validate(); err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	if err := achievement.ValidateThresholds(c.Milestones); err != nil {
		return fmt.Errorf("milestones: %w", err)
	}
	return nil
}

// Snapshot is an immutable view of one user's records. Callers take it
// before evaluating so concurrent edits cannot tear the read.
type Snapshot struct {
	Habits       []models.Habit
	Completions  []models.HabitCompletion
	Achievements models.Achievements
	Seed         models.CategoryScores
	Today        calendar.Day
	Frame        calendar.Frame
}

// Report is everything derived from a snapshot
type Report struct {
	Version      string
	Today        calendar.Day
	Streak       streak.Summary
	Achievements achievement.Result
	Balance      balance.Result
	// Duplicates lists (habit, day) keys that had more than one record.
	Duplicates []completion.Key
}

// Evaluate runs every component against snap.
func Evaluate(snap Snapshot, cfg Config) Report {
	ix := completion.NewIndex(snap.Completions)

	summary := streak.CalculateIndexed(snap.Habits, ix, snap.Today, snap.Frame)
	return Report{
		Version:      Version,
		Today:        snap.Today,
		Streak:       summary,
		Achievements: achievement.Transition(snap.Achievements, summary.Current, cfg.Milestones),
		Balance:      balance.CalculateIndexed(snap.Habits, ix, snap.Seed, snap.Today, snap.Frame, cfg.Balance),
		Duplicates:   ix.Duplicates(),
	}
}
