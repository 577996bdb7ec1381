package habits

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitcore/internal/cli"
	"github.com/julianstephens/habitcore/internal/completion"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/recurrence"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Log    HabitLogCmd    `cmd:"" help:"Record progress toward a habit's goal."`
	Skip   HabitSkipCmd   `cmd:"" help:"Mark a habit as skipped for a day."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit between done and not done."`
	Today  HabitTodayCmd  `cmd:"" help:"Show the habits scheduled for a day."`
}

type HabitAddCmd struct {
	Name        string   `arg:"" optional:"" help:"Habit name."`
	Frequency   string   `help:"daily or weekly." default:"daily" enum:"daily,weekly"`
	Days        string   `help:"Weekdays for weekly habits (e.g. mon,wed,fri or 1,3,5)."`
	Start       string   `help:"Start date YYYY-MM-DD (default: today)."`
	End         string   `help:"Inclusive end date YYYY-MM-DD."`
	Goal        *float64 `help:"Daily goal value."`
	Unit        string   `help:"Unit for the goal (e.g. min, pages)."`
	PerDay      *float64 `name:"per-day" help:"Completions needed per day when there is no goal value."`
	Category    string   `help:"health, mind, social, career or leisure." default:"health"`
	Type        string   `help:"good or bad." default:"good"`
	Interactive bool     `short:"i" help:"Fill the habit in with a form."`
}

// Habit builds the habit described by the flags
func (c *HabitAddCmd) Habit() (models.Habit, error) {
	freq, err := models.ParseFrequency(c.Frequency)
	if err != nil {
		return models.Habit{}, err
	}
	cat, err := models.ParseCategory(c.Category)
	if err != nil {
		return models.Habit{}, err
	}
	typ, err := models.ParseHabitType(c.Type)
	if err != nil {
		return models.Habit{}, err
	}

	h := models.Habit{
		Name:              c.Name,
		Frequency:         freq,
		StartDate:         c.Start,
		EndDate:           c.End,
		IsActive:          true,
		GoalValue:         c.Goal,
		GoalUnit:          c.Unit,
		CompletionsPerDay: c.PerDay,
		Category:          cat,
		Type:              typ,
	}
	if c.Days != "" {
		if h.DaysOfWeek, err = recurrence.ParseWeekdays(c.Days); err != nil {
			return models.Habit{}, err
		}
	}
	return h, nil
}

func (c *HabitAddCmd) form() *huh.Form {
	goal := ""
	if c.Goal != nil {
		goal = strconv.FormatFloat(*c.Goal, 'f', -1, 64)
	}

	categories := make([]huh.Option[string], 0, models.NumCategories)
	for _, cat := range models.Categories {
		name := string(cat)
		categories = append(categories, huh.NewOption(strings.ToUpper(name[:1])+name[1:], name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", string(models.FrequencyDaily)),
					huh.NewOption("Weekly", string(models.FrequencyWeekly)),
				).
				Value(&c.Frequency),
			huh.NewInput().
				Title("Weekdays").
				Description("For weekly habits, e.g. mon,wed,fri").
				Value(&c.Days).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := recurrence.ParseWeekdays(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&c.Category),
			huh.NewInput().
				Title("Daily goal").
				Description("Leave empty for a simple done/not done habit").
				Value(&goal).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					v, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return err
					}
					if v <= 0 {
						return fmt.Errorf("goal must be positive")
					}
					c.Goal = &v
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Value(&c.Unit),
		),
	)
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.form().Run(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("habit name is required (pass it as an argument or use --interactive)")
	}

	h, err := c.Habit()
	if err != nil {
		return err
	}
	added, err := ctx.Service.AddHabit(ctx.User, h)
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (%s, %s)\n", added.Name, recurrence.Describe(added), added.Category)
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include inactive habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Service.Habits(ctx.User)
	if err != nil {
		return err
	}

	shown := 0
	for _, h := range habits {
		if !h.IsActive && !c.All {
			continue
		}
		shown++
		line := fmt.Sprintf("%-20s %-22s %-8s", h.Name, recurrence.Describe(h), h.Category)
		if h.GoalValue != nil || h.CompletionsPerDay != nil {
			line += " " + strings.TrimSpace(fmt.Sprintf("goal %g %s", completion.EffectiveGoal(h), h.GoalUnit))
		}
		if h.Type == models.HabitTypeBad {
			line += " [BAD]"
		}
		if !h.IsActive {
			line = cli.MutedStyle.Render(line + " [INACTIVE]")
		}
		ctx.Println(line)
	}
	if shown == 0 {
		ctx.Println("No habits found.")
	}
	return nil
}

type HabitEditCmd struct {
	Name      string   `arg:"" help:"Habit name."`
	Rename    *string  `help:"New name."`
	Frequency *string  `help:"daily or weekly." enum:"daily,weekly"`
	Days      string   `help:"Weekdays for weekly habits."`
	Start     *string  `help:"Start date YYYY-MM-DD."`
	End       *string  `help:"Inclusive end date YYYY-MM-DD."`
	ClearEnd  bool     `name:"clear-end" help:"Remove the end date."`
	Goal      *float64 `help:"Daily goal value."`
	Unit      *string  `help:"Unit for the goal."`
	PerDay    *float64 `name:"per-day" help:"Completions needed per day."`
	Category  *string  `help:"health, mind, social, career or leisure."`
	Type      *string  `help:"good or bad."`
	Active    *bool    `help:"Set whether the habit is active." negatable:""`
}

// Patch builds the partial update described by the flags
func (c *HabitEditCmd) Patch() (models.HabitPatch, error) {
	p := models.HabitPatch{
		Name:              c.Rename,
		StartDate:         c.Start,
		EndDate:           c.End,
		ClearEndDate:      c.ClearEnd,
		IsActive:          c.Active,
		GoalValue:         c.Goal,
		GoalUnit:          c.Unit,
		CompletionsPerDay: c.PerDay,
	}
	if c.Frequency != nil {
		f, err := models.ParseFrequency(*c.Frequency)
		if err != nil {
			return p, err
		}
		p.Frequency = &f
	}
	if c.Days != "" {
		days, err := recurrence.ParseWeekdays(c.Days)
		if err != nil {
			return p, err
		}
		p.DaysOfWeek = days
	}
	if c.Category != nil {
		cat, err := models.ParseCategory(*c.Category)
		if err != nil {
			return p, err
		}
		p.Category = &cat
	}
	if c.Type != nil {
		t, err := models.ParseHabitType(*c.Type)
		if err != nil {
			return p, err
		}
		p.Type = &t
	}
	return p, nil
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	patch, err := c.Patch()
	if err != nil {
		return err
	}
	h, err := ctx.Service.EditHabit(ctx.User, c.Name, patch)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s (%s)\n", h.Name, recurrence.Describe(h))
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and all of its history?", c.Name)).
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Service.DeleteHabit(ctx.User, c.Name); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", c.Name)
	return nil
}

type HabitLogCmd struct {
	Name   string  `arg:"" help:"Habit name."`
	Amount float64 `arg:"" optional:"" help:"Amount to add (default 1, negative to correct)." default:"1"`
	Date   string  `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	out, err := ctx.Service.LogProgress(ctx.User, c.Name, c.Date, c.Amount)
	if err != nil {
		return err
	}
	ctx.Printf("%s %s %s  %s\n",
		cli.StatusIcon(out.Completion.Status),
		out.Habit.Name,
		completion.ProgressText(out.Habit, out.Completion.Value),
		out.Completion.CompletionDate)
	ctx.PrintRefresh(out.Refresh)
	return nil
}

type HabitSkipCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitSkipCmd) Run(ctx *cli.Context) error {
	out, err := ctx.Service.Skip(ctx.User, c.Name, c.Date)
	if err != nil {
		return err
	}
	ctx.Printf("Skipped %q for %s\n", out.Habit.Name, out.Completion.CompletionDate)
	ctx.PrintRefresh(out.Refresh)
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	out, err := ctx.Service.Toggle(ctx.User, c.Name, c.Date)
	if err != nil {
		return err
	}
	if out.Completion.Status == models.StatusCompleted {
		ctx.Printf("Marked %q done for %s\n", out.Habit.Name, out.Completion.CompletionDate)
	} else {
		ctx.Printf("Unmarked %q for %s\n", out.Habit.Name, out.Completion.CompletionDate)
	}
	ctx.PrintRefresh(out.Refresh)
	return nil
}

type HabitTodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	day, due, err := ctx.Service.DueHabits(ctx.User, c.Date)
	if err != nil {
		return err
	}

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Habits for %s", day)))
	if len(due) == 0 {
		ctx.Println(cli.MutedStyle.Render("Nothing scheduled."))
		return nil
	}

	done := 0
	for _, d := range due {
		if d.Result.Status.Satisfied() {
			done++
		}
		ctx.Printf("%s %-20s %s %s\n", cli.StatusIcon(d.Result.Status), d.Habit.Name, cli.Bar(d.Ratio, 10), d.Progress)
	}
	ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("%d of %d done", done, len(due))))
	return nil
}
