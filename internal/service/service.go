// Package service runs the engine against stored records and persists what
// comes out: completions, achievement flags, balance seeds and notification
// payloads. It is the only layer that logs.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/config"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/storage"
)

type Service struct {
	store storage.Provider
	cfg   *config.Config
	now   func() time.Time
	newID func() string
}

// New creates a service over store. A nil cfg uses the built-in tuning.
func New(store storage.Provider, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Service{
		store: store,
		cfg:   cfg,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// WithClock replaces the wall clock, for tests and replays
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now is the service clock
func (s *Service) Now() time.Time {
	return s.now()
}

// Frame returns the calendar frame of the user's timezone setting
func (s *Service) Frame(userID string) (calendar.Frame, error) {
	_, frame, err := s.userFrame(userID)
	return frame, err
}

// Config returns the tuning the service runs with
func (s *Service) Config() *config.Config {
	return s.cfg
}

// userFrame loads the user's settings and the calendar frame they imply
func (s *Service) userFrame(userID string) (models.Settings, calendar.Frame, error) {
	settings, err := s.store.GetSettings(userID)
	if err != nil {
		return models.Settings{}, calendar.Frame{}, fmt.Errorf("failed to load settings: %w", err)
	}
	frame, err := calendar.LoadFrame(settings.Timezone)
	if err != nil {
		return models.Settings{}, calendar.Frame{}, fmt.Errorf("invalid timezone setting %q: %w", settings.Timezone, err)
	}
	return settings, frame, nil
}

// resolveDay turns user input into a day in frame. Empty input means today.
func (s *Service) resolveDay(input string, frame calendar.Frame) (calendar.Day, error) {
	if input == "" {
		return calendar.TodayAt(frame, s.now()), nil
	}
	day := calendar.Normalize(input, frame)
	if !day.IsValid() {
		return calendar.Invalid, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", input)
	}
	return day, nil
}

// InitUser writes the tuning file's reminder time and baseline into a user
// whose settings are still the built-in defaults.
func (s *Service) InitUser(userID string) (models.Settings, error) {
	settings, err := s.store.GetSettings(userID)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings != models.DefaultSettings() {
		return settings, nil
	}

	settings.ReminderTime = s.cfg.ReminderTime
	settings.Baseline = s.cfg.Baseline
	if err := s.store.SaveSettings(userID, settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
