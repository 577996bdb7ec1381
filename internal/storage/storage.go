package storage

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitcore/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load before Init has created the store
	ErrNotInitialized = errors.New("storage not initialized, run 'habitcore init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings(userID string) (models.Settings, error)
	SaveSettings(userID string, settings models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(userID, name string) (models.Habit, error)
	GetHabitsForUser(userID string) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes the habit together with its completions and
	// notifications.
	DeleteHabit(id string) error

	// Completions
	// UpsertCompletion writes the single record for (HabitID, CompletionDate),
	// keeping the ID of an existing row.
	UpsertCompletion(models.HabitCompletion) error
	GetCompletion(habitID, day string) (models.HabitCompletion, error)
	// GetCompletionsForUser returns completions of the user's habits with
	// startDay <= date <= endDay. Empty bounds are open.
	GetCompletionsForUser(userID, startDay, endDay string) ([]models.HabitCompletion, error)

	// Achievements
	GetAchievements(userID string) (models.Achievements, error)
	SaveAchievements(userID string, achievements models.Achievements) error

	// Balance scores
	GetMatrixScore(userID string) (models.MatrixScore, error)
	SaveMatrixScore(models.MatrixScore) error

	// Notifications
	AddNotification(models.Notification) error
	// GetPendingNotifications returns unprocessed notifications scheduled at
	// or before before, oldest first.
	GetPendingNotifications(userID string, before time.Time) ([]models.Notification, error)
	MarkNotificationProcessed(id string) error

	// Utils
	GetConfigPath() string
}

// OpenEnd is the upper bound used for an open-ended day range
const OpenEnd = "9999-12-31"

// EncodeWeekdays stores a weekday set as "1,3,5"
func EncodeWeekdays(days []time.Weekday) string {
	sorted := append([]time.Weekday(nil), days...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, d := range sorted {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

// DecodeWeekdays parses the form written by EncodeWeekdays
func DecodeWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q in %q", p, s)
		}
		out = append(out, time.Weekday(n))
	}
	return out, nil
}
