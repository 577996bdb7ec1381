package system

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/habitcore/internal/backup"
	"github.com/julianstephens/habitcore/internal/cli"
	"github.com/julianstephens/habitcore/internal/storage/sqlite"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite databases")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	m, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := m.Create()
	if err != nil {
		return err
	}
	ctx.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	m, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.Println("No backups found.")
		return nil
	}

	ctx.Printf("Backups in %s:\n", m.Dir())
	for _, b := range backups {
		ctx.Printf("  %s  %s  %.1f KB\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore (see 'backup list')."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	m, err := manager(ctx)
	if err != nil {
		return err
	}

	path := c.Path
	if filepath.Base(path) == path {
		path = filepath.Join(m.Dir(), path)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	previous, err := m.Restore(path)
	if err != nil {
		return err
	}
	if previous != "" {
		ctx.Printf("Created backup of current database: %s\n", filepath.Base(previous))
	}
	ctx.Printf("Restored database from %s\n", filepath.Base(path))
	return nil
}
