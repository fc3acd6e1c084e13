package cargo

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg"
)

type DependenciesSubCommand string

const (
	DependenciesAll    DependenciesSubCommand = "all"
	DependenciesDeny   DependenciesSubCommand = "deny"
	DependenciesUnused DependenciesSubCommand = "unused"
)

var DependenciesSubCommands = []string{
	string(DependenciesAll),
	string(DependenciesDeny),
	string(DependenciesUnused),
}

type DependenciesCmdArgs struct {
	Command DependenciesSubCommand
}

func (c *Cargo) Dependencies(ctx context.Context, args DependenciesCmdArgs) error {
	switch args.Command {
	case DependenciesAll:
		for _, sub := range []DependenciesSubCommand{DependenciesDeny, DependenciesUnused} {
			err := c.Dependencies(ctx, DependenciesCmdArgs{Command: sub})
			if err != nil {
				return err
			}
		}
		return nil
	case DependenciesDeny:
		pkg.PrintTask("Run cargo-deny")
		err := c.EnsureTool(ctx, "cargo-deny", "cargo-deny")
		if err != nil {
			return err
		}
		return c.cargo(ctx, "deny", "check")
	case DependenciesUnused:
		pkg.PrintTask("Look for unused dependencies")
		err := c.EnsureTool(ctx, "cargo-udeps", "cargo-udeps", "--locked")
		if err != nil {
			return err
		}
		return c.cargo(ctx, "+nightly", "udeps", "--workspace")
	}

	return eris.Errorf("Unknown dependencies command %s", args.Command)
}
