package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/storage"
)

func (s *Store) AddNotification(n models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, user_id, habit_id, kind, title, body, scheduled_for, processed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.HabitID, string(n.Kind), n.Title, n.Body, formatTime(n.ScheduledFor), n.Processed, formatTime(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

func (s *Store) GetPendingNotifications(userID string, before time.Time) ([]models.Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, habit_id, kind, title, body, scheduled_for, processed, created_at
		FROM notifications
		WHERE user_id = ? AND processed = 0 AND scheduled_for <= ?
		ORDER BY scheduled_for, id`, userID, formatTime(before))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var scheduledFor, createdAt string
		if err := rows.Scan(&n.ID, &n.UserID, &n.HabitID, &n.Kind, &n.Title, &n.Body, &scheduledFor, &n.Processed, &createdAt); err != nil {
			return nil, err
		}
		if n.ScheduledFor, err = parseTime(scheduledFor); err != nil {
			return nil, fmt.Errorf("failed to parse scheduled_for for notification %s: %w", n.ID, err)
		}
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at for notification %s: %w", n.ID, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkNotificationProcessed(id string) error {
	result, err := s.db.Exec("UPDATE notifications SET processed = 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("notification %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
