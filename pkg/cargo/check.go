package cargo

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg"
)

// CheckSubCommand is shared by check and fix: both operate on the same set of concerns.
type CheckSubCommand string

const (
	CheckAll    CheckSubCommand = "all"
	CheckAudit  CheckSubCommand = "audit"
	CheckFormat CheckSubCommand = "format"
	CheckLint   CheckSubCommand = "lint"
	CheckTypos  CheckSubCommand = "typos"
)

var CheckSubCommands = []string{
	string(CheckAll),
	string(CheckAudit),
	string(CheckFormat),
	string(CheckLint),
	string(CheckTypos),
}

// checkOrder is the order used when running "all".
var checkOrder = []CheckSubCommand{CheckAudit, CheckFormat, CheckLint, CheckTypos}

type CheckCmdArgs struct {
	Target  Target
	Command CheckSubCommand
}

type FixCmdArgs struct {
	Target  Target
	Command CheckSubCommand
}

// Check verifies the workspace without modifying anything.
func (c *Cargo) Check(ctx context.Context, args CheckCmdArgs) error {
	sel := selection{target: args.Target}

	switch args.Command {
	case CheckAll:
		for _, sub := range checkOrder {
			err := c.Check(ctx, CheckCmdArgs{Target: args.Target, Command: sub})
			if err != nil {
				return err
			}
		}
		return nil
	case CheckAudit:
		pkg.PrintTask("Audit dependencies")
		err := c.EnsureTool(ctx, "cargo-audit", "cargo-audit")
		if err != nil {
			return err
		}
		return c.cargo(ctx, "audit", "-q", "--color", "always")
	case CheckFormat:
		pkg.PrintTask("Check formatting")
		return c.format(ctx, sel, "--check")
	case CheckLint:
		pkg.PrintTask("Run clippy")
		return c.runPackages(ctx, sel, nil, "clippy", "--no-deps", "--color", "always", "--", "--deny", "warnings")
	case CheckTypos:
		pkg.PrintTask("Check typos")
		err := c.EnsureTool(ctx, "typos-cli", "typos")
		if err != nil {
			return err
		}
		return c.run(ctx, "typos")
	}

	return eris.Errorf("Unknown check command %s", args.Command)
}

// Fix applies the automatic fixes for each concern that Check verifies.
func (c *Cargo) Fix(ctx context.Context, args FixCmdArgs) error {
	sel := selection{target: args.Target}

	switch args.Command {
	case CheckAll:
		for _, sub := range checkOrder {
			err := c.Fix(ctx, FixCmdArgs{Target: args.Target, Command: sub})
			if err != nil {
				return err
			}
		}
		return nil
	case CheckAudit:
		pkg.PrintTask("Fix audit findings")
		err := c.EnsureTool(ctx, "cargo-audit", "cargo-audit", "--features", "fix")
		if err != nil {
			return err
		}
		return c.cargo(ctx, "audit", "-q", "--color", "always", "fix")
	case CheckFormat:
		pkg.PrintTask("Format code")
		return c.format(ctx, sel)
	case CheckLint:
		pkg.PrintTask("Fix lints")
		return c.runPackages(ctx, sel, nil, "clippy", "--no-deps", "--fix", "--allow-dirty", "--allow-staged", "--color", "always")
	case CheckTypos:
		pkg.PrintTask("Fix typos")
		err := c.EnsureTool(ctx, "typos-cli", "typos")
		if err != nil {
			return err
		}
		return c.run(ctx, "typos", "--write-changes")
	}

	return eris.Errorf("Unknown fix command %s", args.Command)
}

// format runs rustfmt; cargo fmt takes --all instead of --workspace.
func (c *Cargo) format(ctx context.Context, sel selection, flags ...string) error {
	if sel.target == TargetWorkspace || sel.target == "" {
		return c.cargo(ctx, append([]string{"fmt", "--all"}, flags...)...)
	}

	return c.runPackages(ctx, sel, nil, "fmt", flags...)
}
