// Package config loads the engine tuning file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitcore/internal/achievement"
	"github.com/julianstephens/habitcore/internal/balance"
	"github.com/julianstephens/habitcore/internal/constants"
	"github.com/julianstephens/habitcore/internal/engine"
	"github.com/julianstephens/habitcore/internal/notify"
)

// Config is the engine tuning file
type Config struct {
	// Alpha is the weight of the newest day in the balance score (0 < alpha <= 1)
	Alpha float64 `yaml:"alpha"`
	// WindowDays is the balance lookback, including today
	WindowDays int `yaml:"window_days"`
	// Baseline seeds category scores for users with no stored score
	Baseline float64 `yaml:"baseline"`
	// Milestones are the streak lengths that unlock achievements
	Milestones []int `yaml:"milestones"`
	// ReminderTime is the default HH:MM for reminders when a user has not set one
	ReminderTime string          `yaml:"reminder_time"`
	Templates    TemplatesConfig `yaml:"templates"`
}

// TemplatesConfig holds notification wording. Empty fields use the defaults.
type TemplatesConfig struct {
	MilestoneTitle string `yaml:"milestone_title"`
	MilestoneBody  string `yaml:"milestone_body"`
	ReminderTitle  string `yaml:"reminder_title"`
	ReminderBody   string `yaml:"reminder_body"`
	SummaryTitle   string `yaml:"summary_title"`
	SummaryBody    string `yaml:"summary_body"`
}

// DefaultConfig returns a Config with the built-in tuning
func DefaultConfig() *Config {
	t := notify.DefaultTemplates()
	return &Config{
		Alpha:        constants.BalanceAlpha,
		WindowDays:   constants.BalanceWindowDays,
		Baseline:     constants.DefaultBaselineScore,
		Milestones:   achievement.DefaultThresholds(),
		ReminderTime: constants.DefaultReminderTime,
		Templates: TemplatesConfig{
			MilestoneTitle: t.MilestoneTitle,
			MilestoneBody:  t.MilestoneBody,
			ReminderTitle:  t.ReminderTitle,
			ReminderBody:   t.ReminderBody,
			SummaryTitle:   t.SummaryTitle,
			SummaryBody:    t.SummaryBody,
		},
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return err
	}
	if c.Baseline < 0 || c.Baseline > constants.MaxDailyScore {
		return fmt.Errorf("baseline must be between 0 and %v, got %v", constants.MaxDailyScore, c.Baseline)
	}
	if _, err := notify.ParseClock(c.ReminderTime); err != nil {
		return fmt.Errorf("reminder_time: %w", err)
	}
	return nil
}

// Engine returns the engine tunables
func (c *Config) Engine() engine.Config {
	return engine.Config{
		Balance: balance.Config{
			Alpha:  c.Alpha,
			Window: c.WindowDays,
		},
		Milestones: append([]int(nil), c.Milestones...),
	}
}

// NotifyTemplates returns the wording for notification payloads
func (c *Config) NotifyTemplates() notify.Templates {
	return notify.Templates{
		MilestoneTitle: c.Templates.MilestoneTitle,
		MilestoneBody:  c.Templates.MilestoneBody,
		ReminderTitle:  c.Templates.ReminderTitle,
		ReminderBody:   c.Templates.ReminderBody,
		SummaryTitle:   c.Templates.SummaryTitle,
		SummaryBody:    c.Templates.SummaryBody,
	}.WithDefaults()
}

// Load reads a YAML file over the defaults and validates the result. An empty
// path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
