package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitcore/internal/achievement"
	"github.com/julianstephens/habitcore/internal/constants"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/service"
)

const barWidth = 24

func bar(ratio float64) string {
	ratio = max(0, min(1, ratio))
	filled := int(ratio*barWidth + 0.5)
	return barFilled.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", barWidth-filled))
}

func renderBalance(r service.Refresh) string {
	b := r.Report.Balance
	display := b.Display()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Balance: %d", b.Total())))
	sb.WriteString("\n\n")
	for _, cat := range models.Categories {
		v := display[cat]
		fmt.Fprintf(&sb, "%-8s %s %3d\n", cat, bar(float64(v)/constants.MaxDailyScore), v)
	}
	if n := len(b.Days); n > 0 {
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("Smoothed over %d days ending %s", n, b.Days[n-1].Day)))
	}
	return sb.String()
}

func renderAchievements(r service.Refresh, thresholds []int) string {
	state := r.Report.Achievements.Next
	s := r.Report.Streak

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Achievements (%d/%d)", achievement.CountUnlocked(state, thresholds), len(thresholds))))
	sb.WriteString("\n\n")
	for _, m := range achievement.Milestones(state, thresholds) {
		line := fmt.Sprintf("%s %-16s %s", m.Icon, m.Name, m.Description)
		if m.Unlocked {
			sb.WriteString(doneStyle.Render(line))
		} else {
			sb.WriteString(mutedStyle.Render(line + " 🔒"))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nCurrent streak: %d day(s), longest %d\n", s.Current, s.Longest)
	if days, remaining, ok := achievement.NextMilestone(s.Current, thresholds); ok {
		fmt.Fprintf(&sb, "Next: %s in %d day(s)\n", achievement.Name(days), remaining)
	}
	return sb.String()
}
