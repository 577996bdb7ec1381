// Package storagetest is a conformance suite run against every
// storage.Provider implementation.
package storagetest

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/storage"
)

var base = time.Date(2025, 5, 1, 8, 30, 0, 123456000, time.UTC)

func goal(v float64) *float64 { return &v }

// Habit returns a valid daily habit for userID
func Habit(id, userID, name string) models.Habit {
	return models.Habit{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Frequency: models.FrequencyDaily,
		StartDate: "2025-05-01",
		IsActive:  true,
		Category:  models.CategoryHealth,
		Type:      models.HabitTypeGood,
		CreatedAt: base,
		UpdatedAt: base,
	}
}

// Run exercises every Provider method. newStore must return an initialized,
// empty store; the suite closes nothing.
func Run(t *testing.T, newStore func(t *testing.T) storage.Provider) {
	t.Run("Settings", func(t *testing.T) { testSettings(t, newStore(t)) })
	t.Run("Habits", func(t *testing.T) { testHabits(t, newStore(t)) })
	t.Run("Completions", func(t *testing.T) { testCompletions(t, newStore(t)) })
	t.Run("DeleteCascades", func(t *testing.T) { testDeleteCascades(t, newStore(t)) })
	t.Run("Achievements", func(t *testing.T) { testAchievements(t, newStore(t)) })
	t.Run("MatrixScore", func(t *testing.T) { testMatrixScore(t, newStore(t)) })
	t.Run("Notifications", func(t *testing.T) { testNotifications(t, newStore(t)) })
}

func testSettings(t *testing.T, s storage.Provider) {
	got, err := s.GetSettings("alice")
	if err != nil {
		t.Fatalf("GetSettings on empty store: %v", err)
	}
	if got != models.DefaultSettings() {
		t.Errorf("GetSettings = %+v, want defaults", got)
	}

	want := models.Settings{Timezone: "Europe/Berlin", ReminderTime: "21:15", NotificationsEnabled: false, Baseline: 62.5}
	if err := s.SaveSettings("alice", want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err = s.GetSettings("alice")
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if got != want {
		t.Errorf("GetSettings = %+v, want %+v", got, want)
	}

	other, err := s.GetSettings("bob")
	if err != nil {
		t.Fatalf("GetSettings(bob): %v", err)
	}
	if other != models.DefaultSettings() {
		t.Errorf("settings leaked across users: %+v", other)
	}
}

func testHabits(t *testing.T, s storage.Provider) {
	h := Habit("h1", "alice", "Stretch")
	h.Frequency = models.FrequencyWeekly
	h.DaysOfWeek = []time.Weekday{time.Monday, time.Thursday}
	h.GoalValue = goal(20)
	h.GoalUnit = "min"
	h.Type = models.HabitTypeBad
	h.Category = models.CategoryMind

	if err := s.AddHabit(h); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if err := s.AddHabit(Habit("h2", "bob", "Walk")); err != nil {
		t.Fatalf("AddHabit(h2): %v", err)
	}

	got, err := s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	assertHabit(t, got, h)

	byName, err := s.GetHabitByName("alice", "Stretch")
	if err != nil {
		t.Fatalf("GetHabitByName: %v", err)
	}
	if byName.ID != "h1" {
		t.Errorf("GetHabitByName returned %s", byName.ID)
	}
	if _, err := s.GetHabitByName("bob", "Stretch"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabitByName across users error = %v, want ErrNotFound", err)
	}
	if _, err := s.GetHabit("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit(missing) error = %v, want ErrNotFound", err)
	}

	list, err := s.GetHabitsForUser("alice")
	if err != nil {
		t.Fatalf("GetHabitsForUser: %v", err)
	}
	if len(list) != 1 || list[0].ID != "h1" {
		t.Errorf("GetHabitsForUser = %+v", list)
	}

	h.Name = "Stretch more"
	h.EndDate = "2025-12-31"
	h.IsActive = false
	h.GoalValue = nil
	h.UpdatedAt = base.Add(time.Hour)
	if err := s.UpdateHabit(h); err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	got, err = s.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit after update: %v", err)
	}
	assertHabit(t, got, h)

	if err := s.UpdateHabit(Habit("missing", "alice", "x")); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateHabit(missing) error = %v, want ErrNotFound", err)
	}
}

func assertHabit(t *testing.T, got, want models.Habit) {
	t.Helper()
	if !got.CreatedAt.Equal(want.CreatedAt) || !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("timestamps = %v/%v, want %v/%v", got.CreatedAt, got.UpdatedAt, want.CreatedAt, want.UpdatedAt)
	}
	got.CreatedAt, got.UpdatedAt = want.CreatedAt, want.UpdatedAt
	if !reflect.DeepEqual(got, want) {
		t.Errorf("habit = %+v, want %+v", got, want)
	}
}

func completion(id, habitID, day string, status models.CompletionStatus, value float64) models.HabitCompletion {
	return models.HabitCompletion{
		ID:             id,
		HabitID:        habitID,
		CompletionDate: day,
		Value:          value,
		Status:         status,
		CreatedAt:      base,
		UpdatedAt:      base,
	}
}

func testCompletions(t *testing.T, s storage.Provider) {
	for _, h := range []models.Habit{Habit("h1", "alice", "Run"), Habit("h2", "alice", "Read"), Habit("h3", "bob", "Cook")} {
		if err := s.AddHabit(h); err != nil {
			t.Fatalf("AddHabit(%s): %v", h.ID, err)
		}
	}

	for _, c := range []models.HabitCompletion{
		completion("c1", "h1", "2025-05-01", models.StatusCompleted, 1),
		completion("c2", "h1", "2025-05-02", models.StatusInProgress, 0.5),
		completion("c3", "h2", "2025-05-03", models.StatusSkipped, 0),
		completion("c4", "h3", "2025-05-02", models.StatusCompleted, 1),
	} {
		if err := s.UpsertCompletion(c); err != nil {
			t.Fatalf("UpsertCompletion(%s): %v", c.ID, err)
		}
	}

	// A second write for the same (habit, day) updates the row and keeps its ID.
	update := completion("c2-new", "h1", "2025-05-02", models.StatusCompleted, 1)
	update.UpdatedAt = base.Add(time.Hour)
	if err := s.UpsertCompletion(update); err != nil {
		t.Fatalf("UpsertCompletion(update): %v", err)
	}
	got, err := s.GetCompletion("h1", "2025-05-02")
	if err != nil {
		t.Fatalf("GetCompletion: %v", err)
	}
	if got.ID != "c2" || got.Status != models.StatusCompleted || got.Value != 1 {
		t.Errorf("upserted completion = %+v", got)
	}
	if _, err := s.GetCompletion("h1", "2025-06-01"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCompletion(missing) error = %v, want ErrNotFound", err)
	}

	tests := []struct {
		name       string
		start, end string
		wantIDs    []string
	}{
		{"open range", "", "", []string{"c1", "c2", "c3"}},
		{"inclusive bounds", "2025-05-02", "2025-05-03", []string{"c2", "c3"}},
		{"single day", "2025-05-01", "2025-05-01", []string{"c1"}},
		{"empty range", "2025-06-01", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := s.GetCompletionsForUser("alice", tt.start, tt.end)
			if err != nil {
				t.Fatalf("GetCompletionsForUser: %v", err)
			}
			var ids []string
			for _, c := range list {
				ids = append(ids, c.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func testDeleteCascades(t *testing.T, s storage.Provider) {
	if err := s.AddHabit(Habit("h1", "alice", "Run")); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if err := s.UpsertCompletion(completion("c1", "h1", "2025-05-01", models.StatusCompleted, 1)); err != nil {
		t.Fatalf("UpsertCompletion: %v", err)
	}
	if err := s.AddNotification(models.Notification{ID: "n1", UserID: "alice", HabitID: "h1", Kind: models.NotificationReminder, Title: "t", Body: "b", ScheduledFor: base, CreatedAt: base}); err != nil {
		t.Fatalf("AddNotification: %v", err)
	}

	if err := s.DeleteHabit("h1"); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if _, err := s.GetHabit("h1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("habit still present: %v", err)
	}
	if _, err := s.GetCompletion("h1", "2025-05-01"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("completion survived delete: %v", err)
	}
	pending, err := s.GetPendingNotifications("alice", base.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetPendingNotifications: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("notifications survived delete: %+v", pending)
	}
	if err := s.DeleteHabit("h1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteHabit error = %v, want ErrNotFound", err)
	}
}

func testAchievements(t *testing.T, s storage.Provider) {
	got, err := s.GetAchievements("alice")
	if err != nil {
		t.Fatalf("GetAchievements: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("GetAchievements on empty store = %v", got)
	}

	first := models.Achievements{3: true, 7: true, 14: false}
	if err := s.SaveAchievements("alice", first); err != nil {
		t.Fatalf("SaveAchievements: %v", err)
	}
	second := models.Achievements{3: true, 7: false, 14: false}
	if err := s.SaveAchievements("alice", second); err != nil {
		t.Fatalf("SaveAchievements: %v", err)
	}

	got, err = s.GetAchievements("alice")
	if err != nil {
		t.Fatalf("GetAchievements: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("GetAchievements = %v, want %v", got, second)
	}
}

func testMatrixScore(t *testing.T, s storage.Provider) {
	if _, err := s.GetMatrixScore("alice"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetMatrixScore on empty store error = %v, want ErrNotFound", err)
	}

	want := models.MatrixScore{UserID: "alice", Seed: models.Uniform(50), Scores: models.CategoryScores{50.25, 61.125, 50, 49.5, 70}, ComputedAt: base}
	if err := s.SaveMatrixScore(want); err != nil {
		t.Fatalf("SaveMatrixScore: %v", err)
	}
	want.Scores[0] = 51
	if err := s.SaveMatrixScore(want); err != nil {
		t.Fatalf("SaveMatrixScore (update): %v", err)
	}

	got, err := s.GetMatrixScore("alice")
	if err != nil {
		t.Fatalf("GetMatrixScore: %v", err)
	}
	if got.UserID != want.UserID || got.Seed != want.Seed || got.Scores != want.Scores || !got.ComputedAt.Equal(want.ComputedAt) {
		t.Errorf("GetMatrixScore = %+v, want %+v", got, want)
	}
}

func testNotifications(t *testing.T, s storage.Provider) {
	for i, n := range []models.Notification{
		{ID: "n2", UserID: "alice", Kind: models.NotificationMilestone, Title: "7-day streak", Body: "b", ScheduledFor: base.Add(2 * time.Hour)},
		{ID: "n1", UserID: "alice", Kind: models.NotificationReminder, HabitID: "h1", Title: "Run", Body: "b", ScheduledFor: base},
		{ID: "n3", UserID: "alice", Kind: models.NotificationReminder, Title: "later", Body: "b", ScheduledFor: base.Add(48 * time.Hour)},
		{ID: "n4", UserID: "bob", Kind: models.NotificationReminder, Title: "bob", Body: "b", ScheduledFor: base},
	} {
		n.CreatedAt = base
		if err := s.AddNotification(n); err != nil {
			t.Fatalf("AddNotification #%d: %v", i, err)
		}
	}

	pending, err := s.GetPendingNotifications("alice", base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("GetPendingNotifications: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != "n1" || pending[1].ID != "n2" {
		t.Fatalf("pending = %+v, want n1, n2", pending)
	}
	if pending[0].HabitID != "h1" || pending[0].Kind != models.NotificationReminder || !pending[0].ScheduledFor.Equal(base) {
		t.Errorf("pending[0] = %+v", pending[0])
	}

	if err := s.MarkNotificationProcessed("n1"); err != nil {
		t.Fatalf("MarkNotificationProcessed: %v", err)
	}
	pending, err = s.GetPendingNotifications("alice", base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("GetPendingNotifications: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "n2" {
		t.Errorf("pending after ack = %+v", pending)
	}
	if err := s.MarkNotificationProcessed("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("MarkNotificationProcessed(missing) error = %v, want ErrNotFound", err)
	}
}
