package achievement

import (
	"fmt"
	"sort"

	"github.com/julianstephens/habitcore/internal/models"
)

// Milestone is a display record for one streak threshold
type Milestone struct {
	Days        int
	Name        string
	Description string
	Icon        string
	Unlocked    bool
}

var milestoneNames = map[int]struct{ name, icon string }{
	3:   {"Getting Started", "🌱"},
	7:   {"One Week", "🌿"},
	14:  {"Two Weeks", "🌳"},
	30:  {"One Month", "⭐"},
	60:  {"Two Months", "🌟"},
	90:  {"Quarter", "💫"},
	180: {"Half Year", "🏅"},
	365: {"One Year", "🏆"},
}

// Name returns the display name of a threshold
func Name(days int) string {
	if m, ok := milestoneNames[days]; ok {
		return m.name
	}
	return fmt.Sprintf("%d-Day Streak", days)
}

// Milestones returns every threshold with its unlocked flag, ascending by days.
func Milestones(state models.Achievements, thresholds []int) []Milestone {
	sorted := append([]int(nil), thresholds...)
	sort.Ints(sorted)

	out := make([]Milestone, 0, len(sorted))
	for _, t := range sorted {
		icon := "🔥"
		if m, ok := milestoneNames[t]; ok {
			icon = m.icon
		}
		out = append(out, Milestone{
			Days:        t,
			Name:        Name(t),
			Description: fmt.Sprintf("Keep a %d-day streak", t),
			Icon:        icon,
			Unlocked:    state[t],
		})
	}
	return out
}

// CountUnlocked returns how many thresholds are unlocked
func CountUnlocked(state models.Achievements, thresholds []int) int {
	n := 0
	for _, t := range thresholds {
		if state[t] {
			n++
		}
	}
	return n
}

// NextMilestone returns the smallest threshold above streak and how many
// days remain to reach it. ok is false when every threshold is reached.
func NextMilestone(streak int, thresholds []int) (days, remaining int, ok bool) {
	best := 0
	for _, t := range thresholds {
		if t > streak && (best == 0 || t < best) {
			best = t
		}
	}
	if best == 0 {
		return 0, 0, false
	}
	return best, best - streak, true
}
