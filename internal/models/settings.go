package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/habitcore/internal/constants"
)

// Settings are per-user preferences
type Settings struct {
	Timezone             string  `json:"timezone"`      // IANA timezone name, or "Local" for the system timezone
	ReminderTime         string  `json:"reminder_time"` // HH:MM in Timezone
	NotificationsEnabled bool    `json:"notifications_enabled"`
	Baseline             float64 `json:"baseline"` // seed for category scores with no history
}

// DefaultSettings returns settings populated with defaults
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		ReminderTime:         constants.DefaultReminderTime,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		Baseline:             constants.DefaultBaselineScore,
	}
}

// MapToSettings converts stored key-value rows to a Settings struct.
// Missing keys keep their defaults.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingReminderTime:
			settings.ReminderTime = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingBaseline:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing baseline: %w", err)
			}
			settings.Baseline = v
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to key-value rows
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingReminderTime:         settings.ReminderTime,
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingBaseline:             strconv.FormatFloat(settings.Baseline, 'f', -1, 64),
	}
}
