package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/logger"
	"github.com/julianstephens/habitcore/internal/service"
	"github.com/julianstephens/habitcore/internal/tui/components/habits"
	"github.com/julianstephens/habitcore/internal/tui/components/pane"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateBalance
	StateAchievements
)

var tabTitles = []string{"Today", "Balance", "Achievements"}

type Model struct {
	svc          *service.Service
	user         string
	state        SessionState
	keys         KeyMap
	help         help.Model
	todayModel   habits.Model
	balance      pane.Model
	achievements pane.Model
	day          calendar.Day
	last         service.Refresh
	status       string
	quitting     bool
	width        int
	height       int
}

func NewModel(svc *service.Service, user string) Model {
	m := Model{
		svc:          svc,
		user:         user,
		state:        StateToday,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		todayModel:   habits.New(nil, 0, 0),
		balance:      pane.New(0, 0),
		achievements: pane.New(0, 0),
	}
	m.reload()
	return m
}

// reload reads today's habits and reruns the engine
func (m *Model) reload() {
	if !m.loadToday() {
		return
	}
	r, err := m.svc.Refresh(m.user)
	if err != nil {
		m.fail("Failed to refresh", err)
		return
	}
	m.show(r)
}

func (m *Model) loadToday() bool {
	day, due, err := m.svc.DueHabits(m.user, "")
	if err != nil {
		m.fail("Failed to load today's habits", err)
		return false
	}
	m.day = day
	m.todayModel.SetHabits(due)
	return true
}

func (m *Model) show(r service.Refresh) {
	m.last = r
	m.balance.SetContent(renderBalance(r))
	m.achievements.SetContent(renderAchievements(r, m.svc.Config().Milestones))
}

func (m *Model) fail(msg string, err error) {
	logger.Error(msg, "user", m.user, "error", err)
	m.status = errorStyle.Render("⚠ " + err.Error())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateToday {
		keys = append(keys, m.keys.Toggle, m.keys.Log, m.keys.Skip)
	}
	return append(keys, m.keys.Refresh)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateToday {
		actions = []key.Binding{m.keys.Toggle, m.keys.Log, m.keys.Skip}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
