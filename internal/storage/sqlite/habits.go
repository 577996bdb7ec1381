package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/storage"
)

const habitColumns = `id, user_id, name, frequency, days_of_week, start_date, end_date, is_active,
	goal_value, goal_unit, completions_per_day, category, habit_type, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var daysOfWeek, createdAt, updatedAt string
	var goalValue, perDay sql.NullFloat64

	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Frequency, &daysOfWeek, &h.StartDate, &h.EndDate, &h.IsActive,
		&goalValue, &h.GoalUnit, &perDay, &h.Category, &h.Type, &createdAt, &updatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	if h.DaysOfWeek, err = storage.DecodeWeekdays(daysOfWeek); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}
	if goalValue.Valid {
		v := goalValue.Float64
		h.GoalValue = &v
	}
	if perDay.Valid {
		v := perDay.Float64
		h.CompletionsPerDay = &v
	}
	if h.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	if h.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, string(habit.Frequency), storage.EncodeWeekdays(habit.DaysOfWeek),
		habit.StartDate, habit.EndDate, habit.IsActive, nullFloat(habit.GoalValue), habit.GoalUnit,
		nullFloat(habit.CompletionsPerDay), string(habit.Category), string(habit.Type),
		formatTime(habit.CreatedAt), formatTime(habit.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add habit %q: %w", habit.Name, err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabitByName(userID, name string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE user_id = ? AND name = ?", userID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabitsForUser(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT "+habitColumns+" FROM habits WHERE user_id = ? ORDER BY created_at, id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	result, err := s.db.Exec(`
		UPDATE habits SET
			name = ?, frequency = ?, days_of_week = ?, start_date = ?, end_date = ?, is_active = ?,
			goal_value = ?, goal_unit = ?, completions_per_day = ?, category = ?, habit_type = ?, updated_at = ?
		WHERE id = ?`,
		habit.Name, string(habit.Frequency), storage.EncodeWeekdays(habit.DaysOfWeek), habit.StartDate, habit.EndDate,
		habit.IsActive, nullFloat(habit.GoalValue), habit.GoalUnit, nullFloat(habit.CompletionsPerDay),
		string(habit.Category), string(habit.Type), formatTime(habit.UpdatedAt), habit.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit %s: %w", habit.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habit_completions WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM notifications WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	result, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}

	return tx.Commit()
}
