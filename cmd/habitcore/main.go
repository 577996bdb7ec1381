package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	_ "time/tzdata"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitcore/internal/cli"
	"github.com/julianstephens/habitcore/internal/cli/habits"
	"github.com/julianstephens/habitcore/internal/cli/notifications"
	"github.com/julianstephens/habitcore/internal/cli/report"
	"github.com/julianstephens/habitcore/internal/cli/settings"
	"github.com/julianstephens/habitcore/internal/cli/system"
	"github.com/julianstephens/habitcore/internal/config"
	"github.com/julianstephens/habitcore/internal/constants"
	apperrors "github.com/julianstephens/habitcore/internal/errors"
	"github.com/julianstephens/habitcore/internal/keyring"
	"github.com/julianstephens/habitcore/internal/logger"
	"github.com/julianstephens/habitcore/internal/service"
	"github.com/julianstephens/habitcore/internal/storage"
	"github.com/julianstephens/habitcore/internal/storage/postgres"
	"github.com/julianstephens/habitcore/internal/storage/sqlite"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded; use the OS keyring, HABITCORE_DB_CONNECTION or .pgpass." type:"string" default:"${default_db}"`
	EngineConfig string `name:"engine-config" help:"Engine tuning file (YAML)." type:"path" default:"${default_engine}"`
	User         string `help:"User whose records to use." default:"${default_user}"`
	Debug        bool   `help:"Log debug output to stderr."`

	Init          system.InitCmd                 `cmd:"" help:"Initialize habitcore storage."`
	Migrate       system.MigrateCmd              `cmd:"" help:"Run database migrations."`
	Doctor        system.DoctorCmd               `cmd:"" help:"Run health checks and diagnostics."`
	Validate      system.ValidateCmd             `cmd:"" help:"Check stored habits and completions for conflicts."`
	Habit         habits.HabitCmd                `cmd:"" help:"Manage and track habits."`
	Today         habits.HabitTodayCmd           `cmd:"" help:"Show today's habits." default:"1"`
	Tui           cli.TuiCmd                     `cmd:"" help:"Open the interactive dashboard."`
	Streak        report.StreakCmd               `cmd:"" help:"Show the current and longest streak."`
	Achievements  report.AchievementsCmd         `cmd:"" help:"Show streak milestones."`
	Balance       report.BalanceCmd              `cmd:"" help:"Show the life-balance scores."`
	Report        report.ReportCmd               `cmd:"" help:"Print the full evaluation as JSON."`
	Notifications notifications.NotificationsCmd `cmd:"" help:"Manage notification payloads."`
	Settings      settings.SettingsCmd           `cmd:"" help:"Manage user settings."`
	EngineCfg     system.ConfigCmd               `cmd:"" name:"config" help:"Manage the engine tuning file."`
	Keyring       system.KeyringCmd              `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup        system.BackupCmd               `cmd:"" help:"Manage SQLite database backups."`
}

// noLoad lists commands that open the store themselves
var noLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
	"config":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracking with streaks, milestones and life-balance scores"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_db":     constants.DefaultConfigPath,
			"default_engine": constants.DefaultEngineConfigPath,
			"default_user":   constants.DefaultUserID,
		},
	)

	configDir := filepath.Dir(expandHome(constants.DefaultConfigPath))
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	cfg, err := config.Load(CLI.EngineConfig)
	apperrors.Fatal(err)

	store, err := openStore(CLI.Config)
	apperrors.Fatal(err)
	defer store.Close()

	appCtx := &cli.Context{
		Store:            store,
		Service:          service.New(store, cfg),
		User:             CLI.User,
		EngineConfigPath: CLI.EngineConfig,
	}

	if !noLoad[commandRoot(ctx.Command())] {
		apperrors.Fatal(store.Load())
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// openStore picks the backend. HABITCORE_DB_CONNECTION wins, then the
// keyring when --config is left at its default, then --config itself.
func openStore(configValue string) (storage.Provider, error) {
	connStr := os.Getenv(constants.DBConnectionEnv)
	if connStr != "" {
		logger.Debug("Using connection string from environment", "env", constants.DBConnectionEnv)
		return postgres.New(connStr), nil
	}

	if configValue == constants.DefaultConfigPath {
		stored, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using connection string from OS keyring")
			return postgres.New(stored), nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("OS keyring unavailable, using SQLite", "error", err)
		}
	}

	if postgres.IsConnString(configValue) {
		if err := postgres.ValidateConnString(configValue); err != nil {
			return nil, err
		}
		return postgres.New(configValue), nil
	}
	return sqlite.NewStore(expandHome(configValue)), nil
}

func commandRoot(command string) string {
	root, _, _ := strings.Cut(command, " ")
	return root
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
