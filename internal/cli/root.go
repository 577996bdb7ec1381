package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitcore/internal/achievement"
	"github.com/julianstephens/habitcore/internal/backup"
	"github.com/julianstephens/habitcore/internal/logger"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/service"
	"github.com/julianstephens/habitcore/internal/storage"
	"github.com/julianstephens/habitcore/internal/storage/sqlite"
)

type Context struct {
	Store   storage.Provider
	Service *service.Service
	User    string
	// EngineConfigPath is where the tuning file was read from
	EngineConfigPath string
	Out              io.Writer
}

// Writer returns the command output stream
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted command output
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

// Print writes command output as is
func (c *Context) Print(s string) {
	fmt.Fprint(c.Writer(), s)
}

// Println writes a line of command output
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// PerformAutomaticBackup backs up a SQLite database and only logs failures.
// Other backends are skipped.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	barFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	barEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
)

// Bar renders ratio in [0, 1] as a fixed width progress bar
func Bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return barFilled.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", width-filled))
}

// StatusIcon is the one-character marker for a completion status
func StatusIcon(s models.CompletionStatus) string {
	switch s {
	case models.StatusCompleted:
		return DoneStyle.Render("✓")
	case models.StatusInProgress:
		return WarningStyle.Render("◐")
	case models.StatusSkipped:
		return MutedStyle.Render("–")
	default:
		return MutedStyle.Render("○")
	}
}

// PrintRefresh reports what a write changed: streak, unlocked and revoked milestones
func (c *Context) PrintRefresh(r service.Refresh) {
	c.Printf("🔥 Streak: %d day(s)\n", r.Report.Streak.Current)
	for _, m := range r.Report.Achievements.NewlyUnlocked {
		c.Println(DoneStyle.Render(fmt.Sprintf("🏆 Unlocked: %s (%d days)", achievement.Name(m), m)))
	}
	for _, m := range r.Report.Achievements.Revoked {
		c.Println(MutedStyle.Render(fmt.Sprintf("Lost: %s (%d days)", achievement.Name(m), m)))
	}
}
