package service

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/julianstephens/habitcore/internal/calendar"
	"github.com/julianstephens/habitcore/internal/constants"
	"github.com/julianstephens/habitcore/internal/logger"
	"github.com/julianstephens/habitcore/internal/models"
	"github.com/julianstephens/habitcore/internal/notify"
)

// SettingKeys lists the keys UpdateSetting accepts
func SettingKeys() []string {
	keys := make([]string, 0, 4)
	for k := range models.SettingsToMap(models.DefaultSettings()) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Settings returns the user's settings
func (s *Service) Settings(userID string) (models.Settings, error) {
	settings, err := s.store.GetSettings(userID)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// UpdateSetting validates and stores a single setting
func (s *Service) UpdateSetting(userID, key, value string) (models.Settings, error) {
	settings, err := s.Settings(userID)
	if err != nil {
		return models.Settings{}, err
	}

	switch key {
	case constants.SettingTimezone:
		if !calendar.ValidateTimezone(value) {
			return models.Settings{}, fmt.Errorf("invalid timezone %q", value)
		}
		settings.Timezone = value
	case constants.SettingReminderTime:
		if _, err := notify.ParseClock(value); err != nil {
			return models.Settings{}, err
		}
		settings.ReminderTime = value
	case constants.SettingNotificationsEnabled:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return models.Settings{}, fmt.Errorf("invalid value %q for %s, expected true or false", value, key)
		}
		settings.NotificationsEnabled = v
	case constants.SettingBaseline:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 || v > constants.MaxDailyScore {
			return models.Settings{}, fmt.Errorf("invalid baseline %q, expected a number between 0 and %v", value, constants.MaxDailyScore)
		}
		settings.Baseline = v
	default:
		return models.Settings{}, fmt.Errorf("unknown setting %q (valid: %v)", key, SettingKeys())
	}

	if err := s.store.SaveSettings(userID, settings); err != nil {
		logger.Error("Failed to save settings", "user", userID, "key", key, "error", err)
		return models.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	logger.Debug("Setting updated", "user", userID, "key", key, "value", value)
	return settings, nil
}
