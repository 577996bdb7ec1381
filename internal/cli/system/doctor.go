package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitcore/internal/cli"
	"github.com/julianstephens/habitcore/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	check := func(name string, err error) bool {
		if err != nil {
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			return false
		}
		ctx.Printf("✓ %s: OK\n", name)
		return true
	}

	check("Engine config", ctx.Service.Config().Validate())

	if !check("Database reachable", ctx.Store.Load()) {
		ctx.Println("⊘ Settings: SKIPPED (database not reachable)")
		ctx.Println("⊘ Records: SKIPPED (database not reachable)")
	} else {
		_, err := ctx.Service.Frame(ctx.User)
		check("Settings", err)

		if r, err := ctx.Service.Validate(ctx.User); check("Records", err) && r.HasConflicts() {
			ctx.Printf("⚠ Record conflicts: %d found, run 'habitcore validate' for details\n", len(r.Conflicts))
		}
	}

	switch status := keyring.Default().Status(); {
	case !status.Available:
		ctx.Println("ℹ OS keyring: not available")
	case status.Stored:
		ctx.Println("ℹ OS keyring: connection string stored")
	default:
		ctx.Println("ℹ OS keyring: available, nothing stored")
	}

	ctx.Println()
	if hasError {
		return errors.New("diagnostics failed")
	}
	ctx.Println("All checks passed.")
	return nil
}

type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write the default engine tuning file."`
	Show ConfigShowCmd `cmd:"" help:"Show where the engine tuning is read from." default:"1"`
}

type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing file."`
}

func (c *ConfigInitCmd) Run(ctx *cli.Context) error {
	if ctx.EngineConfigPath == "" {
		return fmt.Errorf("no engine config path set, pass --engine-config")
	}
	if fileExists(ctx.EngineConfigPath) && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", ctx.EngineConfigPath)
	}
	if err := ctx.Service.Config().SaveToFile(ctx.EngineConfigPath); err != nil {
		return err
	}
	ctx.Printf("Wrote engine config to %s\n", ctx.EngineConfigPath)
	return nil
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	if ctx.EngineConfigPath != "" && fileExists(ctx.EngineConfigPath) {
		ctx.Printf("Engine config: %s\n", ctx.EngineConfigPath)
	} else {
		ctx.Println("Engine config: built-in defaults")
	}
	cfg := ctx.Service.Config()
	ctx.Printf("  alpha: %g, window: %d days, baseline: %g, milestones: %v\n", cfg.Alpha, cfg.WindowDays, cfg.Baseline, cfg.Milestones)
	return nil
}
