package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/service"
)

type ToggleHabitMsg struct {
	Name string
}

type LogHabitMsg struct {
	Name string
}

type SkipHabitMsg struct {
	Name string
}

type Item struct {
	Due service.DueHabit
}

func (i Item) Title() string {
	switch i.Due.Result.Status {
	case models.StatusCompleted:
		return "✓ " + i.Due.Habit.Name
	case models.StatusInProgress:
		return "◐ " + i.Due.Habit.Name
	case models.StatusSkipped:
		return "– " + i.Due.Habit.Name
	default:
		return "○ " + i.Due.Habit.Name
	}
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s", i.Due.Progress, i.Due.Habit.Category)
	if i.Due.Habit.Type == models.HabitTypeBad {
		desc += " | avoid"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Due.Habit.Name }

type KeyMap struct {
	Toggle key.Binding
	Log    key.Binding
	Skip   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/space", "toggle done"),
		),
		Log: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "log one"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(due []service.DueHabit, width, height int) Model {
	l := list.New(items(due), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// q and esc belong to the dashboard
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Log, keys.Skip}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Log, keys.Skip}
	}

	return Model{list: l, keys: keys}
}

func items(due []service.DueHabit) []list.Item {
	out := make([]list.Item, len(due))
	for i, d := range due {
		out[i] = Item{Due: d}
	}
	return out
}

func (m *Model) SetHabits(due []service.DueHabit) {
	m.list.SetItems(items(due))
}

// Len is the number of habits listed
func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the user is typing a filter
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		i, ok := m.list.SelectedItem().(Item)
		if !ok {
			break
		}
		name := i.Due.Habit.Name
		switch {
		case key.Matches(msg, m.keys.Toggle):
			return m, func() tea.Msg { return ToggleHabitMsg{Name: name} }
		case key.Matches(msg, m.keys.Log):
			return m, func() tea.Msg { return LogHabitMsg{Name: name} }
		case key.Matches(msg, m.keys.Skip):
			return m, func() tea.Msg { return SkipHabitMsg{Name: name} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Nothing scheduled today.\n  Add a habit with 'habitcore habit add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
