package postgres

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/storage"
)

func (s *Store) AddNotification(n models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, user_id, habit_id, kind, title, body, scheduled_for, processed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.UserID, n.HabitID, string(n.Kind), n.Title, n.Body, n.ScheduledFor, n.Processed, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

func (s *Store) GetPendingNotifications(userID string, before time.Time) ([]models.Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, habit_id, kind, title, body, scheduled_for, processed, created_at
		FROM notifications
		WHERE user_id = $1 AND NOT processed AND scheduled_for <= $2
		ORDER BY scheduled_for, id`, userID, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.HabitID, &n.Kind, &n.Title, &n.Body, &n.ScheduledFor, &n.Processed, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkNotificationProcessed(id string) error {
	result, err := s.db.Exec("UPDATE notifications SET processed = TRUE WHERE id = $1", id)
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
