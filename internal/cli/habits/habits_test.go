package habits

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitcore/internal/cli"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/service"
	"github.com/julianstephens/habitcore/internal/storage/sqlite"
)

// 2025-06-10 is a Tuesday
var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:   store,
		Service: service.New(store, nil).WithClock(func() time.Time { return now }),
		User:    "local",
		Out:     out,
	}
	if _, err := ctx.Service.UpdateSetting(ctx.User, "timezone", "UTC"); err != nil {
		t.Fatalf("failed to set timezone: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, out, cleanup
}

func addHabit(t *testing.T, ctx *cli.Context, cmd HabitAddCmd) {
	t.Helper()
	if cmd.Frequency == "" {
		cmd.Frequency = "daily"
	}
	if cmd.Category == "" {
		cmd.Category = "health"
	}
	if cmd.Type == "" {
		cmd.Type = "good"
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit add %s failed: %v", cmd.Name, err)
	}
}

func TestHabitAddCmd_Habit(t *testing.T) {
	goal := 20.0
	tests := []struct {
		name    string
		cmd     HabitAddCmd
		wantErr bool
		check   func(t *testing.T, h models.Habit)
	}{
		{
			name: "weekly with days",
			cmd:  HabitAddCmd{Name: "Gym", Frequency: "weekly", Days: "mon,wed,fri", Category: "health", Type: "good"},
			check: func(t *testing.T, h models.Habit) {
				want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
				if len(h.DaysOfWeek) != 3 || h.DaysOfWeek[0] != want[0] || h.DaysOfWeek[2] != want[2] {
					t.Errorf("DaysOfWeek = %v, want %v", h.DaysOfWeek, want)
				}
			},
		},
		{
			name: "goal and legacy category key",
			cmd:  HabitAddCmd{Name: "Read", Frequency: "daily", Goal: &goal, Unit: "pages", Category: "cat2", Type: "bad"},
			check: func(t *testing.T, h models.Habit) {
				if h.Category != models.CategoryMind || h.Type != models.HabitTypeBad {
					t.Errorf("category/type = %s/%s", h.Category, h.Type)
				}
				if h.GoalValue == nil || *h.GoalValue != 20 || !h.IsActive {
					t.Errorf("habit = %+v", h)
				}
			},
		},
		{name: "bad category", cmd: HabitAddCmd{Name: "X", Frequency: "daily", Category: "work", Type: "good"}, wantErr: true},
		{name: "bad weekday", cmd: HabitAddCmd{Name: "X", Frequency: "weekly", Days: "funday", Category: "health", Type: "good"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := tt.cmd.Habit()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Habit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, h)
			}
		})
	}
}

func TestHabitAddAndList(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	addHabit(t, ctx, HabitAddCmd{Name: "Read"})
	addHabit(t, ctx, HabitAddCmd{Name: "Gym", Frequency: "weekly", Days: "mon"})

	if err := (&HabitAddCmd{Name: "Read", Frequency: "daily", Category: "health", Type: "good"}).Run(ctx); err == nil {
		t.Error("expected duplicate habit to fail")
	}
	if err := (&HabitAddCmd{}).Run(ctx); err == nil {
		t.Error("expected missing name to fail")
	}

	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	list := out.String()
	if !strings.Contains(list, "Read") || !strings.Contains(list, "weekly on Mon") {
		t.Errorf("list output = %q", list)
	}
}

func TestHabitEditCmd(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()
	addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	inactive := false
	cat := "leisure"
	cmd := &HabitEditCmd{Name: "Read", Category: &cat, Active: &inactive}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit edit failed: %v", err)
	}

	h, err := ctx.Service.Habit(ctx.User, "Read")
	if err != nil {
		t.Fatalf("Habit: %v", err)
	}
	if h.Category != models.CategoryLeisure || h.IsActive {
		t.Errorf("habit = %+v", h)
	}

	bad := "sometimes"
	if err := (&HabitEditCmd{Name: "Read", Frequency: &bad}).Run(ctx); err == nil {
		t.Error("expected invalid frequency to fail")
	}
}

func TestHabitToggleAndToday(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()
	addHabit(t, ctx, HabitAddCmd{Name: "Read", Start: "2025-06-01"})
	addHabit(t, ctx, HabitAddCmd{Name: "Stretch", Start: "2025-06-01"})

	for _, day := range []string{"2025-06-07", "2025-06-08", "2025-06-09"} {
		for _, name := range []string{"Read", "Stretch"} {
			if err := (&HabitToggleCmd{Name: name, Date: day}).Run(ctx); err != nil {
				t.Fatalf("toggle %s %s: %v", name, day, err)
			}
		}
	}
	if !strings.Contains(out.String(), "Unlocked: Getting Started") {
		t.Errorf("expected milestone output, got %q", out.String())
	}

	out.Reset()
	if err := (&HabitToggleCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("toggle today: %v", err)
	}
	if !strings.Contains(out.String(), `Marked "Read" done for 2025-06-10`) {
		t.Errorf("toggle output = %q", out.String())
	}

	out.Reset()
	if err := (&HabitTodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("habit today: %v", err)
	}
	if !strings.Contains(out.String(), "1 of 2 done") {
		t.Errorf("today output = %q", out.String())
	}
}

func TestHabitLogAndSkip(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()
	goal := 30.0
	addHabit(t, ctx, HabitAddCmd{Name: "Run", Goal: &goal, Unit: "min"})

	if err := (&HabitLogCmd{Name: "Run", Amount: 10}).Run(ctx); err != nil {
		t.Fatalf("habit log: %v", err)
	}
	if !strings.Contains(out.String(), "10/30 min") {
		t.Errorf("log output = %q", out.String())
	}

	out.Reset()
	if err := (&HabitSkipCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatalf("habit skip: %v", err)
	}
	if !strings.Contains(out.String(), `Skipped "Run" for 2025-06-10`) {
		t.Errorf("skip output = %q", out.String())
	}

	if err := (&HabitLogCmd{Name: "Nope", Amount: 1}).Run(ctx); err == nil {
		t.Error("expected unknown habit to fail")
	}
}

func TestHabitDeleteCmd(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()
	addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	if err := (&HabitDeleteCmd{Name: "Read", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("habit delete: %v", err)
	}
	habits, err := ctx.Service.Habits(ctx.User)
	if err != nil {
		t.Fatalf("Habits: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("habits = %d, want 0", len(habits))
	}
}
