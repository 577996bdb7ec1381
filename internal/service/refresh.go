package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/engine"
	"github.com/julianstephens/habitcore/internal/logger"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/notify"
)

// Refresh is the persisted result of one evaluation
type Refresh struct {
	Report        engine.Report
	Score         models.MatrixScore
	Notifications []models.Notification
}

// Refresh snapshots the user's records, evaluates them and persists the
// achievement diff, the balance seed and any milestone payloads. Running it
// twice on the same day yields the same state.
func (s *Service) Refresh(userID string) (Refresh, error) {
	settings, frame, err := s.userFrame(userID)
	if err != nil {
		return Refresh{}, err
	}
	now := s.now()
	today := calendar.TodayAt(frame, now)

	snap, err := s.snapshot(userID, settings, frame, today)
	if err != nil {
		return Refresh{}, err
	}

	report := engine.Evaluate(snap, s.cfg.Engine())

	for _, k := range report.Duplicates {
		logger.Warn("Duplicate completion records, using the most recently created", "user", userID, "habit", k.HabitID, "day", k.Day)
	}

	if report.Achievements.Changed() {
		if err := s.store.SaveAchievements(userID, report.Achievements.Next); err != nil {
			logger.Error("Failed to save achievements", "user", userID, "error", err)
			return Refresh{}, fmt.Errorf("failed to save achievements: %w", err)
		}
		if len(report.Achievements.Revoked) > 0 {
			logger.Info("Milestones revoked", "user", userID, "milestones", report.Achievements.Revoked)
		}
	}

	score := models.MatrixScore{
		UserID:     userID,
		Seed:       snap.Seed,
		Scores:     report.Balance.Scores,
		ComputedAt: now,
	}
	if err := s.store.SaveMatrixScore(score); err != nil {
		logger.Error("Failed to save balance score", "user", userID, "error", err)
		return Refresh{}, fmt.Errorf("failed to save balance score: %w", err)
	}

	var sent []models.Notification
	if settings.NotificationsEnabled && len(report.Achievements.NewlyUnlocked) > 0 {
		payloads := notify.Milestones(userID, report.Achievements.NewlyUnlocked, report.Streak.Current, now, s.cfg.NotifyTemplates())
		if sent, err = s.enqueue(payloads); err != nil {
			return Refresh{}, err
		}
	}

	logger.Info("Refreshed",
		"user", userID,
		"day", today.String(),
		"streak", report.Streak.Current,
		"unlocked", report.Achievements.NewlyUnlocked,
		"balance", score.Total(),
		"engine", report.Version)

	return Refresh{Report: report, Score: score, Notifications: sent}, nil
}

// snapshot reads everything Evaluate needs. The balance seed is the stored
// seed when the last run was today, the stored scores when it was earlier,
// and the user's baseline when there is no stored score.
func (s *Service) snapshot(userID string, settings models.Settings, frame calendar.Frame, today calendar.Day) (engine.Snapshot, error) {
	habits, err := s.store.GetHabitsForUser(userID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to load habits: %w", err)
	}
	completions, err := s.store.GetCompletionsForUser(userID, "", today.String())
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to load completions: %w", err)
	}
	achievements, err := s.store.GetAchievements(userID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to load achievements: %w", err)
	}

	seed := models.Uniform(settings.Baseline)
	stored, err := s.store.GetMatrixScore(userID)
	switch {
	case err == nil:
		if calendar.IsSameDay(calendar.NormalizeTime(stored.ComputedAt, frame), today) {
			seed = stored.Seed
		} else {
			seed = stored.Scores
		}
	case !isNotFound(err):
		return engine.Snapshot{}, fmt.Errorf("failed to load balance score: %w", err)
	}

	return engine.Snapshot{
		Habits:       habits,
		Completions:  completions,
		Achievements: achievements,
		Seed:         seed,
		Today:        today,
		Frame:        frame,
	}, nil
}

// enqueue assigns IDs and stores payloads
func (s *Service) enqueue(payloads []models.Notification) ([]models.Notification, error) {
	out := make([]models.Notification, 0, len(payloads))
	for _, n := range payloads {
		n.ID = s.newID()
		if err := s.store.AddNotification(n); err != nil {
			logger.Error("Failed to store notification", "kind", n.Kind, "error", err)
			return out, fmt.Errorf("failed to store notification: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

// ScheduleReminders enqueues tomorrow's reminders and today's summary.
// Payloads already pending for the same slot are not added again.
func (s *Service) ScheduleReminders(userID string) ([]models.Notification, error) {
	settings, frame, err := s.userFrame(userID)
	if err != nil {
		return nil, err
	}
	if !settings.NotificationsEnabled {
		logger.Debug("Notifications disabled, skipping reminders", "user", userID)
		return nil, nil
	}

	now := s.now()
	habits, err := s.store.GetHabitsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	today := calendar.TodayAt(frame, now).String()
	completions, err := s.store.GetCompletionsForUser(userID, today, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	payloads, err := notify.Reminders(userID, habits, completions, now, frame, settings.ReminderTime, s.cfg.NotifyTemplates())
	if err != nil {
		return nil, err
	}

	pending, err := s.store.GetPendingNotifications(userID, now.AddDate(0, 0, 2))
	if err != nil {
		return nil, fmt.Errorf("failed to load pending notifications: %w", err)
	}
	seen := make(map[string]bool, len(pending))
	for _, n := range pending {
		seen[slotKey(n, frame)] = true
	}

	var fresh []models.Notification
	for _, n := range payloads {
		if !seen[slotKey(n, frame)] {
			fresh = append(fresh, n)
		}
	}

	out, err := s.enqueue(fresh)
	if err != nil {
		return nil, err
	}
	logger.Info("Reminders scheduled", "user", userID, "count", len(out), "skipped", len(payloads)-len(fresh))
	return out, nil
}

// slotKey identifies what a payload is about: reminders by habit and time,
// summaries by day.
func slotKey(n models.Notification, frame calendar.Frame) string {
	if n.Kind == models.NotificationSummary {
		return string(n.Kind) + "|" + calendar.NormalizeTime(n.ScheduledFor, frame).String()
	}
	return strings.Join([]string{string(n.Kind), n.HabitID, strconv.FormatInt(n.ScheduledFor.Unix(), 10)}, "|")
}

// PendingNotifications lists payloads due by before
func (s *Service) PendingNotifications(userID string, before time.Time) ([]models.Notification, error) {
	return s.store.GetPendingNotifications(userID, before)
}

// Acknowledge marks a payload as delivered
func (s *Service) Acknowledge(id string) error {
	return s.store.MarkNotificationProcessed(id)
}
