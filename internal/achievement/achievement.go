package achievement

import (
	"fmt"
	"sort"

	"github.com/julianstephens/habitcore/internal/constants"
	"github.com/julianstephens/habitcore/internal/models"
)

// Result is the outcome of one transition
type Result struct {
	Next          models.Achievements
	NewlyUnlocked []int // ascending; the notification boundary fires exactly these
	Revoked       []int // ascending
}

// Changed reports whether the transition altered any flag
func (r Result) Changed() bool {
	return len(r.NewlyUnlocked) > 0 || len(r.Revoked) > 0
}

// Transition moves the unlocked map to match currentStreak. A threshold is
// unlocked when currentStreak >= threshold and revoked when it is below.
// The diff is taken against prev, so repeating a call with the same streak
// yields empty NewlyUnlocked and Revoked. prev is not modified.
//
// thresholds must be positive and free of duplicates; see ValidateThresholds.
func Transition(prev models.Achievements, currentStreak int, thresholds []int) Result {
	next := make(models.Achievements, len(thresholds))
	res := Result{Next: next}

	for _, t := range thresholds {
		was := prev[t]
		now := currentStreak >= t
		next[t] = now
		switch {
		case now && !was:
			res.NewlyUnlocked = append(res.NewlyUnlocked, t)
		case !now && was:
			res.Revoked = append(res.Revoked, t)
		}
	}

	sort.Ints(res.NewlyUnlocked)
	sort.Ints(res.Revoked)
	return res
}

// Unlock sets every threshold that currentStreak reaches. Flags already
// true are left alone.
func Unlock(prev models.Achievements, currentStreak int, thresholds []int) models.Achievements {
	next := prev.Clone()
	for _, t := range thresholds {
		if !next[t] && currentStreak >= t {
			next[t] = true
		}
	}
	return next
}

// Revoke clears every threshold above currentStreak.
func Revoke(prev models.Achievements, currentStreak int, thresholds []int) models.Achievements {
	next := prev.Clone()
	for _, t := range thresholds {
		if currentStreak < t {
			next[t] = false
		}
	}
	return next
}

// ValidateThresholds checks a milestone list at construction time.
func ValidateThresholds(thresholds []int) error {
	if len(thresholds) == 0 {
		return fmt.Errorf("at least one milestone is required")
	}
	seen := make(map[int]bool, len(thresholds))
	for _, t := range thresholds {
		if t <= 0 {
			return fmt.Errorf("milestone must be positive: %d", t)
		}
		if seen[t] {
			return fmt.Errorf("duplicate milestone: %d", t)
		}
		seen[t] = true
	}
	return nil
}

// DefaultThresholds returns a copy of the built-in milestone list
func DefaultThresholds() []int {
	return append([]int(nil), constants.DefaultMilestones...)
}
