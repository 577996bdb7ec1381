package constants

const (
	AppName            = "habitcore"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitcore/habitcore.db"
	DefaultUserID      = "local"
	Version            = "v0.3.0"

	// DefaultEngineConfigPath is the engine tuning file. A missing file means built-in defaults.
	DefaultEngineConfigPath = "~/.config/habitcore/engine.yaml"

	// DateFormat is the canonical calendar day format used at every boundary (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the reminder time-of-day format (HH:MM)
	TimeFormat = "15:04"

	// DBConnectionEnv overrides the --config flag with a postgres connection string
	DBConnectionEnv = "HABITCORE_DB_CONNECTION"
)

// DefaultMilestones are the streak lengths (in days) that unlock an achievement.
var DefaultMilestones = []int{3, 7, 14, 30, 60, 90, 180, 365}
