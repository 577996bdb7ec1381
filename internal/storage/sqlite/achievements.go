package sqlite

import (
	"time"

	"github.com/julianstephens/habitcore/internal/models"
)

func (s *Store) GetAchievements(userID string) (models.Achievements, error) {
	rows, err := s.db.Query("SELECT milestone, unlocked FROM achievements WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(models.Achievements)
	for rows.Next() {
		var milestone int
		var unlocked bool
		if err := rows.Scan(&milestone, &unlocked); err != nil {
			return nil, err
		}
		out[milestone] = unlocked
	}
	return out, rows.Err()
}

// SaveAchievements replaces the user's unlocked map in one transaction
func (s *Store) SaveAchievements(userID string, achievements models.Achievements) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM achievements WHERE user_id = ?", userID); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO achievements (user_id, milestone, unlocked, updated_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := formatTime(time.Now())
	for milestone, unlocked := range achievements {
		if _, err := stmt.Exec(userID, milestone, unlocked, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}
