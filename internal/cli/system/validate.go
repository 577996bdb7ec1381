package system

import (
	"errors"

	"github.com/julianstephens/habitcore/internal/cli"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when conflicts are found."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := ctx.Service.Validate(ctx.User)
	if err != nil {
		return err
	}
	ctx.Print(result.FormatReport())
	if c.Strict && result.HasConflicts() {
		return errors.New("validation found conflicts")
	}
	return nil
}
