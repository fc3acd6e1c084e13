package cargo

import (
	"bufio"
	"context"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg"
)

const tokenEnvVar = "CRATES_IO_API_TOKEN"

type PublishCmdArgs struct {
	Name string
}

var searchLine = regexp.MustCompile(`^([A-Za-z0-9_-]+) = "([^"]+)"`)

// parseSearchVersion extracts the registry version of name from `cargo search` output.
func parseSearchVersion(output, name string) (*semver.Version, bool, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		match := searchLine.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if match == nil || match[1] != name {
			continue
		}

		version, err := semver.NewVersion(match[2])
		if err != nil {
			return nil, false, eris.Wrapf(err, "Invalid registry version %s for %s", match[2], name)
		}
		return version, true, nil
	}

	return nil, false, nil
}

// Publish uploads a workspace crate unless the registry already has its version.
func (c *Cargo) Publish(ctx context.Context, args PublishCmdArgs) error {
	ws, err := c.Workspace()
	if err != nil {
		return err
	}

	member, ok := ws.Member(args.Name)
	if !ok {
		return eris.Errorf("Crate %s is not part of the workspace", args.Name)
	}

	local, err := semver.NewVersion(member.Version)
	if err != nil {
		return eris.Wrapf(err, "Invalid version %s for %s", member.Version, args.Name)
	}

	output, err := c.exec.Output(ctx, Command{
		Name: "cargo",
		Args: []string{"search", args.Name, "--limit", "1"},
		Dir:  c.root,
	})
	if err != nil {
		return eris.Wrapf(err, "Failed to query the registry for %s", args.Name)
	}

	remote, found, err := parseSearchVersion(output, args.Name)
	if err != nil {
		return err
	}

	if found && !remote.LessThan(local) {
		pkg.Log(ctx).Info().Msgf("%s %s is already published (registry has %s), skipping", args.Name, local, remote)
		return nil
	}

	env := map[string]string{}
	token, ok := c.lookupEnv(tokenEnvVar)
	switch {
	case ok && token != "":
		env["CARGO_REGISTRY_TOKEN"] = token
	case c.dryRun():
		pkg.Log(ctx).Warn().Msgf("%s is not set, the publish would fail", tokenEnvVar)
	default:
		return eris.Errorf("%s must be set to publish %s", tokenEnvVar, args.Name)
	}

	pkg.PrintTask("Publish " + args.Name + " " + local.String())
	err = c.cargo(ctx, "publish", "--dry-run", "-p", args.Name)
	if err != nil {
		return eris.Wrapf(err, "Dry run failed for %s", args.Name)
	}

	err = c.cargoEnv(ctx, env, "publish", "-p", args.Name)
	if err != nil {
		return eris.Wrapf(err, "Failed to publish %s", args.Name)
	}

	return nil
}

// dryRun reports whether the executor only logs commands.
func (c *Cargo) dryRun() bool {
	d, ok := c.exec.(interface{ IsDryRun() bool })
	return ok && d.IsDryRun()
}
