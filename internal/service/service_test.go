package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/julianstephens/habitcore/internal/config"
	"github.com/julianstephens/habitcore/internal/constants"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/storage"
	"github.com/julianstephens/habitcore/internal/storage/sqlite"
)

const user = "alice"

// 2025-06-10 is a Tuesday
var tuesdayEvening = time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, cfg *config.Config) (*Service, *testClock) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitcore.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := &testClock{now: tuesdayEvening}
	svc := New(store, cfg).WithClock(clock.Now)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	if _, err := svc.UpdateSetting(user, constants.SettingTimezone, "UTC"); err != nil {
		t.Fatalf("UpdateSetting: %v", err)
	}
	return svc, clock
}

func daily(name, start string) models.Habit {
	return models.Habit{
		Name:      name,
		Frequency: models.FrequencyDaily,
		StartDate: start,
		IsActive:  true,
		Category:  models.CategoryHealth,
	}
}

func mustAdd(t *testing.T, svc *Service, h models.Habit) models.Habit {
	t.Helper()
	out, err := svc.AddHabit(user, h)
	if err != nil {
		t.Fatalf("AddHabit(%s): %v", h.Name, err)
	}
	return out
}

func TestAddHabit(t *testing.T) {
	svc, _ := newTestService(t, nil)

	h := mustAdd(t, svc, models.Habit{
		Name:      "  Read  ",
		Frequency: models.FrequencyDaily,
		IsActive:  true,
		Category:  models.CategoryMind,
	})
	if h.ID != "id-1" || h.UserID != user {
		t.Errorf("ID/UserID = %q/%q", h.ID, h.UserID)
	}
	if h.Name != "Read" {
		t.Errorf("Name = %q, want trimmed", h.Name)
	}
	if h.StartDate != "2025-06-10" {
		t.Errorf("StartDate = %q, want today", h.StartDate)
	}
	if h.Type != models.HabitTypeGood {
		t.Errorf("Type = %q, want good", h.Type)
	}

	if _, err := svc.AddHabit(user, daily("Read", "2025-06-01")); err == nil {
		t.Error("expected duplicate name to be rejected")
	}
	if _, err := svc.AddHabit("bob", daily("Read", "2025-06-01")); err != nil {
		t.Errorf("same name for another user: %v", err)
	}
	if _, err := svc.AddHabit(user, models.Habit{Name: "Bad", Frequency: models.FrequencyWeekly, IsActive: true, Category: models.CategoryHealth}); err == nil {
		t.Error("expected weekly habit without weekdays to be rejected")
	}
}

func TestEditAndDeleteHabit(t *testing.T) {
	svc, _ := newTestService(t, nil)
	mustAdd(t, svc, daily("Read", "2025-06-01"))
	mustAdd(t, svc, daily("Run", "2025-06-01"))

	name := "Run"
	if _, err := svc.EditHabit(user, "Read", models.HabitPatch{Name: &name}); err == nil {
		t.Error("expected rename onto an existing name to fail")
	}

	cat := models.CategoryLeisure
	edited, err := svc.EditHabit(user, "Read", models.HabitPatch{Category: &cat})
	if err != nil {
		t.Fatalf("EditHabit: %v", err)
	}
	if edited.Category != models.CategoryLeisure {
		t.Errorf("Category = %q, want leisure", edited.Category)
	}

	if err := svc.DeleteHabit(user, "Read"); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if _, err := svc.Habit(user, "Read"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Habit after delete: err = %v, want ErrNotFound", err)
	}
	habits, err := svc.Habits(user)
	if err != nil {
		t.Fatalf("Habits: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Run" {
		t.Errorf("Habits = %+v, want only Run", habits)
	}
}

func TestToggle_StreakAndMilestone(t *testing.T) {
	svc, clock := newTestService(t, nil)
	mustAdd(t, svc, daily("Read", "2025-06-07"))

	for _, day := range []string{"2025-06-07", "2025-06-08"} {
		out, err := svc.Toggle(user, "Read", day)
		if err != nil {
			t.Fatalf("Toggle(%s): %v", day, err)
		}
		if out.Refresh.Report.Streak.Current != 0 {
			t.Errorf("after %s: streak = %d, want 0 (06-09 not done)", day, out.Refresh.Report.Streak.Current)
		}
	}

	last, err := svc.Toggle(user, "Read", "2025-06-09")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got := last.Refresh.Report.Streak.Current; got != 3 {
		t.Errorf("streak = %d, want 3 (today is still open)", got)
	}
	if got := last.Refresh.Report.Achievements.NewlyUnlocked; len(got) != 1 || got[0] != 3 {
		t.Errorf("NewlyUnlocked = %v, want [3]", got)
	}
	if len(last.Refresh.Notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(last.Refresh.Notifications))
	}
	n := last.Refresh.Notifications[0]
	if n.Kind != models.NotificationMilestone || n.Title != "🔥 3-day streak!" || n.ID == "" {
		t.Errorf("notification = %+v", n)
	}

	last, err = svc.Toggle(user, "Read", "")
	if err != nil {
		t.Fatalf("Toggle today: %v", err)
	}
	if got := last.Refresh.Report.Streak.Current; got != 4 {
		t.Errorf("streak = %d, want 4", got)
	}
	if len(last.Refresh.Notifications) != 0 {
		t.Errorf("unexpected notifications: %+v", last.Refresh.Notifications)
	}

	pending, err := svc.PendingNotifications(user, clock.now.Add(time.Minute))
	if err != nil {
		t.Fatalf("PendingNotifications: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if err := svc.Acknowledge(pending[0].ID); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	pending, _ = svc.PendingNotifications(user, clock.now.Add(time.Minute))
	if len(pending) != 0 {
		t.Errorf("pending after ack = %d, want 0", len(pending))
	}

	// Untoggling yesterday breaks the streak and revokes the milestone
	last, err = svc.Toggle(user, "Read", "2025-06-09")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got := last.Refresh.Report.Streak.Current; got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
	if got := last.Refresh.Report.Achievements.Revoked; len(got) != 1 || got[0] != 3 {
		t.Errorf("Revoked = %v, want [3]", got)
	}
}

func TestLogProgress(t *testing.T) {
	svc, _ := newTestService(t, nil)
	goal := 8.0
	h := daily("Water", "2025-06-01")
	h.GoalValue = &goal
	h.GoalUnit = "glasses"
	mustAdd(t, svc, h)

	out, err := svc.LogProgress(user, "Water", "", 3)
	if err != nil {
		t.Fatalf("LogProgress: %v", err)
	}
	if out.Completion.Value != 3 || out.Completion.Status != models.StatusInProgress {
		t.Errorf("completion = %+v, want 3 in progress", out.Completion)
	}

	out, err = svc.LogProgress(user, "Water", "", 5)
	if err != nil {
		t.Fatalf("LogProgress: %v", err)
	}
	if out.Completion.Value != 8 || out.Completion.Status != models.StatusCompleted {
		t.Errorf("completion = %+v, want 8 completed", out.Completion)
	}
	if out.Completion.ID != "id-2" {
		t.Errorf("ID = %q, want the first record's ID kept", out.Completion.ID)
	}

	if _, err := svc.LogProgress(user, "Water", "June 1st", 1); err == nil {
		t.Error("expected invalid date to fail")
	}
	if _, err := svc.LogProgress(user, "Missing", "", 1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("unknown habit: err = %v, want ErrNotFound", err)
	}
}

func TestSkip(t *testing.T) {
	svc, _ := newTestService(t, nil)
	mustAdd(t, svc, daily("Read", "2025-06-01"))

	out, err := svc.Skip(user, "Read", "2025-06-09")
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if out.Completion.Status != models.StatusSkipped {
		t.Errorf("Status = %q, want skipped", out.Completion.Status)
	}
	if out.Refresh.Report.Streak.Current != 0 {
		t.Errorf("streak = %d, want 0", out.Refresh.Report.Streak.Current)
	}
}

func TestRefresh_SameDayIsIdempotent(t *testing.T) {
	svc, clock := newTestService(t, nil)
	mustAdd(t, svc, daily("Read", "2025-06-01"))
	if _, err := svc.Toggle(user, "Read", ""); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	first, err := svc.Refresh(user)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if first.Score.Seed != models.Uniform(constants.DefaultBaselineScore) {
		t.Errorf("Seed = %v, want baseline", first.Score.Seed)
	}

	clock.now = clock.now.Add(time.Hour)
	second, err := svc.Refresh(user)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.Score.Scores != first.Score.Scores {
		t.Errorf("same-day refresh moved scores: %v -> %v", first.Score.Scores, second.Score.Scores)
	}
	if second.Report.Achievements.Changed() {
		t.Errorf("same-day refresh changed achievements: %+v", second.Report.Achievements)
	}

	clock.now = clock.now.AddDate(0, 0, 1)
	third, err := svc.Refresh(user)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if third.Score.Seed != second.Score.Scores {
		t.Errorf("next-day seed = %v, want previous scores %v", third.Score.Seed, second.Score.Scores)
	}
}

func TestRefresh_UsesUserBaseline(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if _, err := svc.UpdateSetting(user, constants.SettingBaseline, "20"); err != nil {
		t.Fatalf("UpdateSetting: %v", err)
	}
	r, err := svc.Refresh(user)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	// No habits: every category carries its seed through
	if r.Score.Scores != models.Uniform(20) {
		t.Errorf("Scores = %v, want all 20", r.Score.Scores)
	}
	if r.Score.Total() != 20 {
		t.Errorf("Total = %d, want 20", r.Score.Total())
	}
}

func TestRefresh_NotificationsDisabled(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if _, err := svc.UpdateSetting(user, constants.SettingNotificationsEnabled, "false"); err != nil {
		t.Fatalf("UpdateSetting: %v", err)
	}
	mustAdd(t, svc, daily("Read", "2025-06-07"))
	for _, day := range []string{"2025-06-07", "2025-06-08", "2025-06-09"} {
		if _, err := svc.Toggle(user, "Read", day); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
	}

	achievements, err := svc.store.GetAchievements(user)
	if err != nil {
		t.Fatalf("GetAchievements: %v", err)
	}
	if !achievements[3] {
		t.Error("milestone 3 should still unlock")
	}
	pending, _ := svc.PendingNotifications(user, tuesdayEvening.AddDate(0, 0, 2))
	if len(pending) != 0 {
		t.Errorf("pending = %d, want 0", len(pending))
	}
}

func TestDueHabits(t *testing.T) {
	svc, _ := newTestService(t, nil)
	goal := 30.0
	run := daily("Run", "2025-06-01")
	run.GoalValue = &goal
	run.GoalUnit = "min"
	mustAdd(t, svc, run)

	gym := daily("Gym", "2025-06-01")
	gym.Frequency = models.FrequencyWeekly
	gym.DaysOfWeek = []time.Weekday{time.Monday}
	mustAdd(t, svc, gym)

	if _, err := svc.LogProgress(user, "Run", "", 15); err != nil {
		t.Fatalf("LogProgress: %v", err)
	}

	day, due, err := svc.DueHabits(user, "")
	if err != nil {
		t.Fatalf("DueHabits: %v", err)
	}
	if day.String() != "2025-06-10" {
		t.Errorf("day = %s, want 2025-06-10", day)
	}
	if len(due) != 1 || due[0].Habit.Name != "Run" {
		t.Fatalf("due = %+v, want only Run", due)
	}
	if due[0].Ratio != 0.5 || due[0].Result.Status != models.StatusInProgress {
		t.Errorf("Run = ratio %v status %q", due[0].Ratio, due[0].Result.Status)
	}

	_, due, err = svc.DueHabits(user, "2025-06-09")
	if err != nil {
		t.Fatalf("DueHabits: %v", err)
	}
	if len(due) != 2 {
		t.Errorf("Monday due = %d, want 2", len(due))
	}
	for _, d := range due {
		if d.Result.Status != models.StatusNotStarted {
			t.Errorf("%s status = %q, want not_started", d.Habit.Name, d.Result.Status)
		}
	}
}

func TestScheduleReminders(t *testing.T) {
	svc, _ := newTestService(t, nil)
	h := mustAdd(t, svc, daily("Read", "2025-06-01"))

	first, err := svc.ScheduleReminders(user)
	if err != nil {
		t.Fatalf("ScheduleReminders: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("scheduled = %d, want reminder and summary", len(first))
	}
	r := first[0]
	if r.Kind != models.NotificationReminder || r.HabitID != h.ID {
		t.Errorf("reminder = %+v", r)
	}
	if want := time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC); !r.ScheduledFor.Equal(want) {
		t.Errorf("ScheduledFor = %v, want %v", r.ScheduledFor, want)
	}
	if first[1].Kind != models.NotificationSummary || first[1].Body != "0 of 1 done, 1 left." {
		t.Errorf("summary = %+v", first[1])
	}

	again, err := svc.ScheduleReminders(user)
	if err != nil {
		t.Fatalf("ScheduleReminders: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second run scheduled %d, want 0", len(again))
	}

	if _, err := svc.UpdateSetting(user, constants.SettingNotificationsEnabled, "false"); err != nil {
		t.Fatalf("UpdateSetting: %v", err)
	}
	none, err := svc.ScheduleReminders(user)
	if err != nil || none != nil {
		t.Errorf("disabled: got %v, %v", none, err)
	}
}

func TestUpdateSetting(t *testing.T) {
	svc, _ := newTestService(t, nil)

	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{constants.SettingTimezone, "Asia/Tokyo", false},
		{constants.SettingTimezone, "Mars/Olympus", true},
		{constants.SettingReminderTime, "21:15", false},
		{constants.SettingReminderTime, "25:00", true},
		{constants.SettingNotificationsEnabled, "false", false},
		{constants.SettingNotificationsEnabled, "maybe", true},
		{constants.SettingBaseline, "75.5", false},
		{constants.SettingBaseline, "101", true},
		{constants.SettingBaseline, "-1", true},
		{"theme", "dark", true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			_, err := svc.UpdateSetting(user, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("UpdateSetting(%s, %s) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}

	got, err := svc.Settings(user)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	want := models.Settings{Timezone: "Asia/Tokyo", ReminderTime: "21:15", NotificationsEnabled: false, Baseline: 75.5}
	if got != want {
		t.Errorf("Settings = %+v, want %+v", got, want)
	}
}

func TestInitUser(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Baseline = 40
	cfg.ReminderTime = "07:30"

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitcore.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer store.Close()
	svc := New(store, cfg)

	got, err := svc.InitUser(user)
	if err != nil {
		t.Fatalf("InitUser: %v", err)
	}
	if got.Baseline != 40 || got.ReminderTime != "07:30" {
		t.Errorf("settings = %+v, want tuning file values", got)
	}

	if _, err := svc.UpdateSetting(user, constants.SettingBaseline, "60"); err != nil {
		t.Fatalf("UpdateSetting: %v", err)
	}
	got, err = svc.InitUser(user)
	if err != nil {
		t.Fatalf("InitUser: %v", err)
	}
	if got.Baseline != 60 {
		t.Errorf("Baseline = %v, want user's 60 kept", got.Baseline)
	}
}
