package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/storage"
)

func (s *Store) GetMatrixScore(userID string) (models.MatrixScore, error) {
	m := models.MatrixScore{UserID: userID}
	err := s.db.QueryRow(`
		SELECT seed_health, seed_mind, seed_social, seed_career, seed_leisure,
			health, mind, social, career, leisure, computed_at
		FROM matrix_scores WHERE user_id = $1`, userID).
		Scan(&m.Seed[0], &m.Seed[1], &m.Seed[2], &m.Seed[3], &m.Seed[4],
			&m.Scores[0], &m.Scores[1], &m.Scores[2], &m.Scores[3], &m.Scores[4], &m.ComputedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MatrixScore{}, fmt.Errorf("matrix score for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.MatrixScore{}, err
	}
	return m, nil
}

func (s *Store) SaveMatrixScore(m models.MatrixScore) error {
	_, err := s.db.Exec(`
		INSERT INTO matrix_scores (user_id, seed_health, seed_mind, seed_social, seed_career, seed_leisure,
			health, mind, social, career, leisure, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			seed_health = EXCLUDED.seed_health,
			seed_mind = EXCLUDED.seed_mind,
			seed_social = EXCLUDED.seed_social,
			seed_career = EXCLUDED.seed_career,
			seed_leisure = EXCLUDED.seed_leisure,
			health = EXCLUDED.health,
			mind = EXCLUDED.mind,
			social = EXCLUDED.social,
			career = EXCLUDED.career,
			leisure = EXCLUDED.leisure,
			computed_at = EXCLUDED.computed_at`,
		m.UserID, m.Seed[0], m.Seed[1], m.Seed[2], m.Seed[3], m.Seed[4],
		m.Scores[0], m.Scores[1], m.Scores[2], m.Scores[3], m.Scores[4], m.ComputedAt)
	return err
}
