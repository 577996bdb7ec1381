package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitcore/internal/achievement"
	"github.com/julianstephens/habitcore/internal/service"
	"github.com/julianstephens/habitcore/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		h, v := docStyle.GetFrameSize()
		// tabs, status and help take a line each
		width, height := msg.Width-h, msg.Height-v-3
		m.todayModel.SetSize(width, height)
		m.balance.SetSize(width, height)
		m.achievements.SetSize(width, height)
		return m, nil

	case habits.ToggleHabitMsg:
		m.apply(m.svc.Toggle(m.user, msg.Name, ""))
		return m, nil
	case habits.LogHabitMsg:
		m.apply(m.svc.LogProgress(m.user, msg.Name, "", 1))
		return m, nil
	case habits.SkipHabitMsg:
		m.apply(m.svc.Skip(m.user, msg.Name, ""))
		return m, nil

	case tea.KeyMsg:
		if m.state == StateToday && m.todayModel.Filtering() {
			break
		}
		tabs := SessionState(len(tabTitles))
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabs) % tabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case StateBalance:
		m.balance, cmd = m.balance.Update(msg)
	case StateAchievements:
		m.achievements, cmd = m.achievements.Update(msg)
	}
	return m, cmd
}

// apply shows the result of a write and reloads the views
func (m *Model) apply(out service.Outcome, err error) {
	if err != nil {
		m.fail("Failed to record progress", err)
		return
	}
	m.status = fmt.Sprintf("%s: %s  🔥 %d", out.Habit.Name, out.Completion.Status, out.Refresh.Report.Streak.Current)
	for _, d := range out.Refresh.Report.Achievements.NewlyUnlocked {
		m.status += doneStyle.Render(fmt.Sprintf("  🏆 %s", achievement.Name(d)))
	}
	if m.loadToday() {
		m.show(out.Refresh)
	}
}
