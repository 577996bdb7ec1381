package balance

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/completion"
	"github.com/julianstephens/habitcore/internal/models"
)

var today = calendar.Date(2025, 5, 31)

func habit(id string, cat models.Category) models.Habit {
	return models.Habit{
		ID:        id,
		Frequency: models.FrequencyDaily,
		StartDate: "2025-01-01",
		IsActive:  true,
		Category:  cat,
		Type:      models.HabitTypeGood,
	}
}

func everyDay(habitID string, status models.CompletionStatus, days int) []models.HabitCompletion {
	var out []models.HabitCompletion
	for i := 0; i < days; i++ {
		d := today.AddDays(-i).String()
		out = append(out, models.HabitCompletion{
			ID:             habitID + "-" + d,
			HabitID:        habitID,
			CompletionDate: d,
			Status:         status,
		})
	}
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculate_ConvergenceBound(t *testing.T) {
	cfg := DefaultConfig()
	habits := []models.Habit{habit("run", models.CategoryHealth)}
	completions := everyDay("run", models.StatusCompleted, cfg.Window)

	res := Calculate(habits, completions, models.CategoryScores{}, today, calendar.UTC, cfg)

	health := res.Scores.Get(models.CategoryHealth)
	want := 100 * ConvergenceBound(cfg)
	if !near(health, want) {
		t.Errorf("health = %v, want %v", health, want)
	}
	if health >= 100 {
		t.Errorf("health reached %v within one window", health)
	}
}

func TestCalculate_NoDrift(t *testing.T) {
	cfg := DefaultConfig()
	habits := []models.Habit{habit("run", models.CategoryHealth)}
	completions := everyDay("run", models.StatusCompleted, cfg.Window)
	seed := models.Uniform(50)

	res := Calculate(habits, completions, seed, today, calendar.UTC, cfg)

	for _, c := range []models.Category{models.CategoryMind, models.CategorySocial, models.CategoryCareer, models.CategoryLeisure} {
		if got := res.Scores.Get(c); got != 50 {
			t.Errorf("%s drifted to %v", c, got)
		}
	}
	if res.Scores.Get(models.CategoryHealth) <= 50 {
		t.Errorf("health should rise above seed, got %v", res.Scores.Get(models.CategoryHealth))
	}
}

func TestCalculate_MissedDaysPullDown(t *testing.T) {
	cfg := Config{Alpha: 0.5, Window: 2}
	habits := []models.Habit{habit("read", models.CategoryMind)}

	res := Calculate(habits, nil, models.Uniform(80), today, calendar.UTC, cfg)

	// 80 -> 40 -> 20
	if got := res.Scores.Get(models.CategoryMind); !near(got, 20) {
		t.Errorf("mind = %v, want 20", got)
	}
}

func TestCalculate_InProgressIsNotCompleted(t *testing.T) {
	cfg := Config{Alpha: 1, Window: 1}
	habits := []models.Habit{habit("read", models.CategoryMind)}
	completions := everyDay("read", models.StatusInProgress, 1)

	res := Calculate(habits, completions, models.Uniform(50), today, calendar.UTC, cfg)
	if got := res.Scores.Get(models.CategoryMind); got != 0 {
		t.Errorf("mind = %v, want 0", got)
	}
}

func TestDailyPerformance(t *testing.T) {
	habits := []models.Habit{
		habit("a", models.CategoryHealth),
		habit("b", models.CategoryHealth),
		habit("c", models.CategorySocial),
		habit("d", models.CategorySocial),
		habit("e", models.CategoryCareer),
		habit("f", models.CategoryCareer),
		habit("g", models.CategoryCareer),
	}
	var completions []models.HabitCompletion
	completions = append(completions, everyDay("a", models.StatusCompleted, 1)...)
	completions = append(completions, everyDay("c", models.StatusSkipped, 1)...)
	completions = append(completions, everyDay("d", models.StatusCompleted, 1)...)
	completions = append(completions, everyDay("e", models.StatusCompleted, 1)...)
	completions = append(completions, everyDay("f", models.StatusCompleted, 1)...)
	completions = append(completions, everyDay("g", models.StatusCompleted, 1)...)

	got := DailyPerformance(habits, completion.NewIndex(completions), today, calendar.UTC)

	tests := []struct {
		cat  models.Category
		want float64
	}{
		{models.CategoryHealth, 50},
		{models.CategorySocial, 100}, // skipped habit drops out of the count
		{models.CategoryCareer, 100}, // three thirds are capped at 100
		{models.CategoryMind, -1},
		{models.CategoryLeisure, -1},
	}
	for _, tt := range tests {
		t.Run(string(tt.cat), func(t *testing.T) {
			if v := got.Get(tt.cat); !near(v, tt.want) {
				t.Errorf("DPS = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestDailyPerformance_AllSkipped(t *testing.T) {
	habits := []models.Habit{habit("a", models.CategoryLeisure)}
	ix := completion.NewIndex(everyDay("a", models.StatusSkipped, 1))

	if v := DailyPerformance(habits, ix, today, calendar.UTC).Get(models.CategoryLeisure); v != -1 {
		t.Errorf("DPS = %v, want -1", v)
	}
}

func TestDailyPerformance_WeeklyOffDay(t *testing.T) {
	h := habit("gym", models.CategoryHealth)
	h.Frequency = models.FrequencyWeekly
	h.DaysOfWeek = []time.Weekday{time.Monday} // 2025-05-31 is a Saturday

	if v := DailyPerformance([]models.Habit{h}, completion.NewIndex(nil), today, calendar.UTC).Get(models.CategoryHealth); v != -1 {
		t.Errorf("DPS on off day = %v, want -1", v)
	}
}

func TestResult_TotalRoundsAfterAveraging(t *testing.T) {
	// Rounded first: (50*4 + 52) / 5 = 50.4 -> 50. Averaged first: 50.8 -> 51.
	seed := models.CategoryScores{50.4, 50.4, 50.4, 50.4, 52.4}
	res := Calculate(nil, nil, seed, today, calendar.UTC, DefaultConfig())

	if res.Scores != seed {
		t.Fatalf("scores moved with no habits: %v", res.Scores)
	}
	if got := res.Total(); got != 51 {
		t.Errorf("Total = %d, want 51", got)
	}
	if got := res.Display()[models.CategoryLeisure]; got != 52 {
		t.Errorf("Display leisure = %d, want 52", got)
	}
}

func TestCalculate_Window(t *testing.T) {
	cfg := Config{Alpha: 0.1, Window: 5}
	res := Calculate(nil, nil, models.Uniform(50), today, calendar.UTC, cfg)

	if len(res.Days) != 5 {
		t.Fatalf("len(Days) = %d, want 5", len(res.Days))
	}
	if !calendar.IsSameDay(res.Days[0].Day, today.AddDays(-4)) {
		t.Errorf("first day = %s, want %s", res.Days[0].Day, today.AddDays(-4))
	}
	if !calendar.IsSameDay(res.Days[4].Day, today) {
		t.Errorf("last day = %s, want %s", res.Days[4].Day, today)
	}
}

func TestCalculate_Fallbacks(t *testing.T) {
	habits := []models.Habit{habit("a", models.CategoryHealth)}
	seed := models.Uniform(42)

	res := Calculate(habits, nil, seed, calendar.Invalid, calendar.UTC, DefaultConfig())
	if res.Scores != seed || res.Days != nil {
		t.Errorf("invalid today should return the seed, got %+v", res)
	}

	res = Calculate(habits, nil, seed, today, calendar.UTC, Config{Alpha: 0.5, Window: 0})
	if res.Scores != seed {
		t.Errorf("empty window should return the seed, got %v", res.Scores)
	}
}

func TestCalculate_OrderIndependent(t *testing.T) {
	habits := []models.Habit{
		habit("a", models.CategoryHealth),
		habit("b", models.CategoryHealth),
		habit("c", models.CategoryMind),
	}
	completions := append(everyDay("a", models.StatusCompleted, 10), everyDay("c", models.StatusCompleted, 3)...)

	reversedHabits := []models.Habit{habits[2], habits[1], habits[0]}
	reversed := make([]models.HabitCompletion, len(completions))
	for i, c := range completions {
		reversed[len(completions)-1-i] = c
	}

	cfg := DefaultConfig()
	a := Calculate(habits, completions, models.Uniform(50), today, calendar.UTC, cfg)
	b := Calculate(reversedHabits, reversed, models.Uniform(50), today, calendar.UTC, cfg)
	if a.Scores != b.Scores {
		t.Errorf("order changed scores: %v vs %v", a.Scores, b.Scores)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"alpha one", Config{Alpha: 1, Window: 1}, false},
		{"alpha zero", Config{Alpha: 0, Window: 14}, true},
		{"alpha above one", Config{Alpha: 1.5, Window: 14}, true},
		{"window zero", Config{Alpha: 0.1, Window: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
