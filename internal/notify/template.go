package notify

import (
	"strconv"
	"strings"
)

// Templates are the title/body pairs for each payload kind
type Templates struct {
	MilestoneTitle string
	MilestoneBody  string
	ReminderTitle  string
	ReminderBody   string
	SummaryTitle   string
	SummaryBody    string
}

// DefaultTemplates returns the built-in wording
func DefaultTemplates() Templates {
	return Templates{
		MilestoneTitle: "🔥 {milestone}-day streak!",
		MilestoneBody:  "You have kept every habit going for {count} days.",
		ReminderTitle:  "Tomorrow: {habit}",
		ReminderBody:   "{habit} is scheduled for tomorrow.",
		SummaryTitle:   "Today's habits",
		SummaryBody:    "{count} of {total} done, {remaining} left.",
	}
}

// WithDefaults fills empty fields from DefaultTemplates
func (t Templates) WithDefaults() Templates {
	d := DefaultTemplates()
	fill := func(dst *string, def string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = def
		}
	}
	fill(&t.MilestoneTitle, d.MilestoneTitle)
	fill(&t.MilestoneBody, d.MilestoneBody)
	fill(&t.ReminderTitle, d.ReminderTitle)
	fill(&t.ReminderBody, d.ReminderBody)
	fill(&t.SummaryTitle, d.SummaryTitle)
	fill(&t.SummaryBody, d.SummaryBody)
	return t
}

// Vars are the placeholder values available to a template
type Vars struct {
	Milestone int
	Habit     string
	Count     int
	Total     int
	Remaining int
}

// Render substitutes {milestone}, {habit}, {count}, {total} and {remaining}.
// Unknown placeholders are left as written.
func Render(tmpl string, v Vars) string {
	r := strings.NewReplacer(
		"{milestone}", strconv.Itoa(v.Milestone),
		"{habit}", v.Habit,
		"{count}", strconv.Itoa(v.Count),
		"{total}", strconv.Itoa(v.Total),
		"{remaining}", strconv.Itoa(v.Remaining),
	)
	return r.Replace(tmpl)
}
