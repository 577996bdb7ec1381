package settings

import (
	"github.com/julianstephens/habitcore/internal/cli"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Service.Settings(ctx.User)
	if err != nil {
		return err
	}
	cfg := ctx.Service.Config()

	ctx.Println("Current Settings:")
	ctx.Printf("  Timezone:              %s\n", settings.Timezone)
	ctx.Printf("  Reminder Time:         %s\n", settings.ReminderTime)
	ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
	ctx.Printf("  Baseline Score:        %g\n", settings.Baseline)
	ctx.Println("\nEngine Tuning:")
	ctx.Printf("  Alpha:                 %g\n", cfg.Alpha)
	ctx.Printf("  Window:                %d days\n", cfg.WindowDays)
	ctx.Printf("  Milestones:            %v\n", cfg.Milestones)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name." enum:"timezone,reminder_time,notifications_enabled,baseline"`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Service.UpdateSetting(ctx.User, c.Key, c.Value); err != nil {
		return err
	}
	ctx.Printf("Updated %s = %s\n", c.Key, c.Value)
	return nil
}
