package service

import (
	"fmt"

	"github.com/julianstephens/habitcore/internal/validation"
)

// Validate checks the user's stored habits and completions
func (s *Service) Validate(userID string) (validation.Result, error) {
	_, frame, err := s.userFrame(userID)
	if err != nil {
		return validation.Result{}, err
	}
	habits, err := s.store.GetHabitsForUser(userID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to load habits: %w", err)
	}
	completions, err := s.store.GetCompletionsForUser(userID, "", "")
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to load completions: %w", err)
	}
	return validation.Validate(habits, completions, frame), nil
}
