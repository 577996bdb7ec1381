package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/storage"
)

func (s *Store) GetMatrixScore(userID string) (models.MatrixScore, error) {
	m := models.MatrixScore{UserID: userID}
	var computedAt string

	err := s.db.QueryRow(`
		SELECT seed_health, seed_mind, seed_social, seed_career, seed_leisure,
			health, mind, social, career, leisure, computed_at
		FROM matrix_scores WHERE user_id = ?`, userID).
		Scan(&m.Seed[0], &m.Seed[1], &m.Seed[2], &m.Seed[3], &m.Seed[4],
			&m.Scores[0], &m.Scores[1], &m.Scores[2], &m.Scores[3], &m.Scores[4], &computedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MatrixScore{}, fmt.Errorf("matrix score for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.MatrixScore{}, err
	}

	if m.ComputedAt, err = parseTime(computedAt); err != nil {
		return models.MatrixScore{}, fmt.Errorf("failed to parse computed_at: %w", err)
	}
	return m, nil
}

func (s *Store) SaveMatrixScore(m models.MatrixScore) error {
	_, err := s.db.Exec(`
		INSERT INTO matrix_scores (user_id, seed_health, seed_mind, seed_social, seed_career, seed_leisure,
			health, mind, social, career, leisure, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			seed_health = excluded.seed_health,
			seed_mind = excluded.seed_mind,
			seed_social = excluded.seed_social,
			seed_career = excluded.seed_career,
			seed_leisure = excluded.seed_leisure,
			health = excluded.health,
			mind = excluded.mind,
			social = excluded.social,
			career = excluded.career,
			leisure = excluded.leisure,
			computed_at = excluded.computed_at`,
		m.UserID, m.Seed[0], m.Seed[1], m.Seed[2], m.Seed[3], m.Seed[4],
		m.Scores[0], m.Scores[1], m.Scores[2], m.Scores[3], m.Scores[4], formatTime(m.ComputedAt))
	return err
}
