package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.todayModel.View()
	case StateBalance:
		content = m.balance.View()
	case StateAchievements:
		content = m.achievements.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if m.day.IsValid() {
		tabs = append(tabs, mutedStyle.Render(fmt.Sprintf("  %s  🔥 %d", m.day, m.last.Report.Streak.Current)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
