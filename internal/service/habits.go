package service

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/logger"
	"github.com/julianstephens/habitcore/internal/models"
)

// AddHabit validates and stores a new habit for userID. ID, owner and
// timestamps are assigned here; a missing start date means today.
func (s *Service) AddHabit(userID string, h models.Habit) (models.Habit, error) {
	_, frame, err := s.userFrame(userID)
	if err != nil {
		return models.Habit{}, err
	}

	now := s.now()
	h.ID = s.newID()
	h.UserID = userID
	h.Name = strings.TrimSpace(h.Name)
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.StartDate == "" {
		h.StartDate = calendar.TodayAt(frame, now).String()
	}
	if h.Type == "" {
		h.Type = models.HabitTypeGood
	}

	if err := h.Validate(); err != nil {
		return models.Habit{}, err
	}
	if _, err := s.store.GetHabitByName(userID, h.Name); err == nil {
		return models.Habit{}, fmt.Errorf("habit %q already exists", h.Name)
	} else if !isNotFound(err) {
		return models.Habit{}, err
	}

	if err := s.store.AddHabit(h); err != nil {
		logger.Error("Failed to add habit", "user", userID, "habit", h.Name, "error", err)
		return models.Habit{}, err
	}
	logger.Debug("Habit added", "user", userID, "habit", h.Name, "id", h.ID)
	return h, nil
}

// Habit looks a habit up by name
func (s *Service) Habit(userID, name string) (models.Habit, error) {
	h, err := s.store.GetHabitByName(userID, strings.TrimSpace(name))
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to find habit %q: %w", name, err)
	}
	return h, nil
}

// Habits lists the user's habits in creation order
func (s *Service) Habits(userID string) ([]models.Habit, error) {
	return s.store.GetHabitsForUser(userID)
}

// EditHabit applies patch to the named habit and stores the result
func (s *Service) EditHabit(userID, name string, patch models.HabitPatch) (models.Habit, error) {
	h, err := s.Habit(userID, name)
	if err != nil {
		return models.Habit{}, err
	}

	updated := h.Apply(patch, s.now())
	if err := updated.Validate(); err != nil {
		return models.Habit{}, err
	}
	if updated.Name != h.Name {
		if _, err := s.store.GetHabitByName(userID, updated.Name); err == nil {
			return models.Habit{}, fmt.Errorf("habit %q already exists", updated.Name)
		}
	}

	if err := s.store.UpdateHabit(updated); err != nil {
		logger.Error("Failed to update habit", "user", userID, "habit", h.Name, "error", err)
		return models.Habit{}, err
	}
	return updated, nil
}

// DeleteHabit removes the named habit with its history
func (s *Service) DeleteHabit(userID, name string) error {
	h, err := s.Habit(userID, name)
	if err != nil {
		return err
	}
	if err := s.store.DeleteHabit(h.ID); err != nil {
		logger.Error("Failed to delete habit", "user", userID, "habit", h.Name, "error", err)
		return err
	}
	logger.Info("Habit deleted", "user", userID, "habit", h.Name)
	return nil
}
