package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/habitcore/internal/achievement"
	"github.com/julianstephens/habitcore/internal/cli"
	"github.com/julianstephens/habitcore/internal/constants"
	"github.com/julianstephens/habitcore/internal/models"
)

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Service.Refresh(ctx.User)
	if err != nil {
		return err
	}
	s := r.Report.Streak

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("🔥 Current streak: %d day(s)", s.Current)))
	if s.Span > s.Current {
		ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("   spanning %d calendar days", s.Span)))
	}
	if s.LastSatisfied.IsValid() {
		ctx.Printf("   Last complete day: %s\n", s.LastSatisfied)
	}
	ctx.Printf("   Longest streak:    %d day(s)\n", s.Longest)

	if days, remaining, ok := achievement.NextMilestone(s.Current, ctx.Service.Config().Milestones); ok {
		ctx.Printf("   Next milestone:    %s in %d day(s)\n", achievement.Name(days), remaining)
	}
	return nil
}

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Service.Refresh(ctx.User)
	if err != nil {
		return err
	}
	thresholds := ctx.Service.Config().Milestones
	state := r.Report.Achievements.Next

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Achievements (%d/%d)", achievement.CountUnlocked(state, thresholds), len(thresholds))))
	for _, m := range achievement.Milestones(state, thresholds) {
		line := fmt.Sprintf("%s %-16s %s", m.Icon, m.Name, m.Description)
		if m.Unlocked {
			ctx.Println(cli.DoneStyle.Render(line))
		} else {
			ctx.Println(cli.MutedStyle.Render(line + " 🔒"))
		}
	}
	return nil
}

type BalanceCmd struct {
	Days bool `help:"Show the daily performance for every day in the window."`
}

func (c *BalanceCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Service.Refresh(ctx.User)
	if err != nil {
		return err
	}
	b := r.Report.Balance
	display := b.Display()

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Balance: %d", b.Total())))
	for _, cat := range models.Categories {
		v := display[cat]
		ctx.Printf("  %-8s %s %3d\n", cat, cli.Bar(float64(v)/constants.MaxDailyScore, 20), v)
	}

	if c.Days {
		ctx.Println()
		header := []string{fmt.Sprintf("%-10s", "day")}
		for _, cat := range models.Categories {
			header = append(header, fmt.Sprintf("%8s", cat))
		}
		ctx.Println(cli.MutedStyle.Render(strings.Join(header, " ")))
		for _, d := range b.Days {
			row := []string{d.Day.String()}
			for _, v := range d.Scores {
				if v == constants.NoScheduledHabits {
					row = append(row, fmt.Sprintf("%8s", "-"))
					continue
				}
				row = append(row, fmt.Sprintf("%8.0f", v))
			}
			ctx.Println(strings.Join(row, " "))
		}
	}
	return nil
}

// ReportCmd prints the whole evaluation as JSON
type ReportCmd struct {
	Indent bool `help:"Indent the JSON output." default:"true" negatable:""`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Service.Refresh(ctx.User)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(ctx.Writer())
	if c.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(r)
}
