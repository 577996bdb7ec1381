package constants

const (
	// User Settings
	SettingTimezone             = "timezone"
	SettingReminderTime         = "reminder_time"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingBaseline             = "baseline"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultReminderTime         = "08:00"
	DefaultNotificationsEnabled = true
)
