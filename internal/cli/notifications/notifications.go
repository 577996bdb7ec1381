package notifications

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitcore/internal/cli"
	"github.com/julianstephens/habitcore/internal/models"
)

type NotificationsCmd struct {
	List     NotificationsListCmd     `cmd:"" help:"List pending notifications." default:"1"`
	Schedule NotificationsScheduleCmd `cmd:"" help:"Queue tomorrow's reminders and today's summary."`
	Ack      NotificationsAckCmd      `cmd:"" help:"Mark a notification as delivered."`
}

type NotificationsListCmd struct {
	Within time.Duration `help:"Include notifications due within this long from now." default:"24h"`
}

func (c *NotificationsListCmd) Run(ctx *cli.Context) error {
	frame, err := ctx.Service.Frame(ctx.User)
	if err != nil {
		return err
	}
	pending, err := ctx.Service.PendingNotifications(ctx.User, ctx.Service.Now().Add(c.Within))
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		ctx.Println("No pending notifications.")
		return nil
	}

	for _, n := range pending {
		at := n.ScheduledFor.In(frame.Location()).Format("2006-01-02 15:04")
		ctx.Printf("%s  %s  %-9s %s\n", cli.MutedStyle.Render(n.ID), at, n.Kind, cli.TitleStyle.Render(n.Title))
		ctx.Printf("    %s\n", n.Body)
	}
	return nil
}

type NotificationsScheduleCmd struct{}

func (c *NotificationsScheduleCmd) Run(ctx *cli.Context) error {
	queued, err := ctx.Service.ScheduleReminders(ctx.User)
	if err != nil {
		return err
	}
	if len(queued) == 0 {
		ctx.Println("Nothing new to schedule.")
		return nil
	}

	reminders := 0
	for _, n := range queued {
		if n.Kind == models.NotificationReminder {
			reminders++
		}
	}
	ctx.Printf("Queued %d reminder(s)", reminders)
	if reminders < len(queued) {
		ctx.Printf(" and today's summary")
	}
	ctx.Println(".")
	return nil
}

type NotificationsAckCmd struct {
	ID string `arg:"" help:"Notification ID."`
}

func (c *NotificationsAckCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.Acknowledge(c.ID); err != nil {
		return fmt.Errorf("failed to acknowledge %s: %w", c.ID, err)
	}
	ctx.Printf("Acknowledged %s\n", c.ID)
	return nil
}
