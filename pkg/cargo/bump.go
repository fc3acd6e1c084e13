package cargo

import (
	"context"

	"github.com/Masterminds/semver/v3"
	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg"
)

type BumpSubCommand string

const (
	BumpMajor BumpSubCommand = "major"
	BumpMinor BumpSubCommand = "minor"
	BumpPatch BumpSubCommand = "patch"
)

var BumpSubCommands = []string{string(BumpMajor), string(BumpMinor), string(BumpPatch)}

type BumpCmdArgs struct {
	Command BumpSubCommand
}

// NextVersion increments the requested component of current.
func NextVersion(current string, kind BumpSubCommand) (string, error) {
	version, err := semver.NewVersion(current)
	if err != nil {
		return "", eris.Wrapf(err, "Invalid version %s", current)
	}

	var next semver.Version
	switch kind {
	case BumpMajor:
		next = version.IncMajor()
	case BumpMinor:
		next = version.IncMinor()
	case BumpPatch:
		next = version.IncPatch()
	default:
		return "", eris.Errorf("Unknown bump command %s", kind)
	}

	return next.String(), nil
}

// Bump raises the shared workspace version.
func (c *Cargo) Bump(ctx context.Context, args BumpCmdArgs) error {
	ws, err := c.Workspace()
	if err != nil {
		return err
	}

	if ws.Version == "" {
		return eris.New("The workspace manifest has no [workspace.package] version")
	}

	next, err := NextVersion(ws.Version, args.Command)
	if err != nil {
		return err
	}

	pkg.PrintTask("Bump version: " + ws.Version + " -> " + next)
	err = c.EnsureTool(ctx, "cargo-edit", "cargo-set-version")
	if err != nil {
		return err
	}

	return c.cargo(ctx, "set-version", "--workspace", next)
}
