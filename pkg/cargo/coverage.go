package cargo

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg"
)

type CoverageSubCommand string

const (
	CoverageInstall  CoverageSubCommand = "install"
	CoverageGenerate CoverageSubCommand = "generate"
)

var CoverageSubCommands = []string{string(CoverageInstall), string(CoverageGenerate)}

var defaultCoverageIgnores = []string{"/*", "xtask/*", "examples/*"}

type CoverageCmdArgs struct {
	Command CoverageSubCommand
	// Profile is the cargo profile whose binaries were instrumented (debug or release).
	Profile string
	Ignore  []string
}

func (c *Cargo) Coverage(ctx context.Context, args CoverageCmdArgs) error {
	switch args.Command {
	case CoverageInstall:
		pkg.PrintTask("Install coverage tools")
		err := c.run(ctx, "rustup", "component", "add", "llvm-tools-preview")
		if err != nil {
			return eris.Wrap(err, "Failed to install llvm-tools-preview")
		}
		return c.EnsureTool(ctx, "grcov", "grcov")
	case CoverageGenerate:
		profile := args.Profile
		if profile == "" {
			profile = "debug"
		}
		if profile != "debug" && profile != "release" {
			return eris.Errorf("Unknown profile %s, expected debug or release", profile)
		}

		pkg.PrintTask("Generate lcov.info")
		grcovArgs := []string{
			".",
			"--binary-path", "./target/" + profile + "/",
			"-s", ".",
			"-t", "lcov",
			"--branch",
			"--ignore-not-existing",
		}
		for _, pattern := range append(append([]string{}, defaultCoverageIgnores...), args.Ignore...) {
			grcovArgs = append(grcovArgs, "--ignore", pattern)
		}
		grcovArgs = append(grcovArgs, "-o", "lcov.info")

		return c.run(ctx, "grcov", grcovArgs...)
	}

	return eris.Errorf("Unknown coverage command %s", args.Command)
}
