package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/storage"
)

func scanCompletion(row scanner) (models.HabitCompletion, error) {
	var c models.HabitCompletion
	err := row.Scan(&c.ID, &c.HabitID, &c.CompletionDate, &c.Value, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *Store) UpsertCompletion(c models.HabitCompletion) error {
	_, err := s.db.Exec(`
		INSERT INTO habit_completions (id, habit_id, completion_date, value, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (habit_id, completion_date) DO UPDATE SET
			value = EXCLUDED.value,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.HabitID, c.CompletionDate, c.Value, string(c.Status), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save completion for habit %s on %s: %w", c.HabitID, c.CompletionDate, err)
	}
	return nil
}

func (s *Store) GetCompletion(habitID, day string) (models.HabitCompletion, error) {
	c, err := scanCompletion(s.db.QueryRow(`
		SELECT id, habit_id, completion_date, value, status, created_at, updated_at
		FROM habit_completions WHERE habit_id = $1 AND completion_date = $2`, habitID, day))
	if errors.Is(err, sql.ErrNoRows) {
		return models.HabitCompletion{}, fmt.Errorf("completion for habit %s on %s: %w", habitID, day, storage.ErrNotFound)
	}
	return c, err
}

func (s *Store) GetCompletionsForUser(userID, startDay, endDay string) ([]models.HabitCompletion, error) {
	if endDay == "" {
		endDay = storage.OpenEnd
	}

	rows, err := s.db.Query(`
		SELECT c.id, c.habit_id, c.completion_date, c.value, c.status, c.created_at, c.updated_at
		FROM habit_completions c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.user_id = $1 AND c.completion_date >= $2 AND c.completion_date <= $3
		ORDER BY c.completion_date, c.habit_id`, userID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HabitCompletion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
