// Package cargo implements the workspace-wide routines shared by all xtask commands: building,
// testing, linting, publishing and friends. Every external process goes through an Executor.
package cargo

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"

	"github.com/jguhlin/burn/xtask/pkg"
)

// Target selects which workspace members a command operates on.
type Target string

const (
	TargetWorkspace   Target = "workspace"
	TargetCrates      Target = "crates"
	TargetExamples    Target = "examples"
	TargetAllPackages Target = "all-packages"
)

var Targets = []string{
	string(TargetWorkspace),
	string(TargetCrates),
	string(TargetExamples),
	string(TargetAllPackages),
}

func ParseTarget(value string) (Target, error) {
	for _, t := range Targets {
		if t == value {
			return Target(value), nil
		}
	}

	return "", eris.Errorf("Unknown target %q, expected one of %v", value, Targets)
}

// Cargo runs cargo (and related tools) in a workspace.
type Cargo struct {
	exec      Executor
	root      string
	host      string
	stderr    io.Writer
	lookPath  func(string) (string, error)
	lookupEnv func(string) (string, bool)
	workspace *Workspace
}

func New(executor Executor, root string) *Cargo {
	return &Cargo{
		exec:      executor,
		root:      root,
		host:      hostTriple(runtime.GOOS, runtime.GOARCH),
		stderr:    os.Stderr,
		lookPath:  exec.LookPath,
		lookupEnv: os.LookupEnv,
	}
}

func (c *Cargo) Root() string {
	return c.root
}

// Workspace parses the workspace manifest on first use.
func (c *Cargo) Workspace() (*Workspace, error) {
	if c.workspace == nil {
		ws, err := LoadWorkspace(c.root)
		if err != nil {
			return nil, err
		}
		c.workspace = ws
	}

	return c.workspace, nil
}

func (c *Cargo) run(ctx context.Context, name string, args ...string) error {
	return c.exec.Run(ctx, Command{Name: name, Args: args, Dir: c.root})
}

func (c *Cargo) cargo(ctx context.Context, args ...string) error {
	return c.run(ctx, "cargo", args...)
}

func (c *Cargo) cargoEnv(ctx context.Context, env map[string]string, args ...string) error {
	return c.exec.Run(ctx, Command{Name: "cargo", Args: args, Env: env, Dir: c.root})
}

// AddTarget installs a compilation target through rustup.
func (c *Cargo) AddTarget(ctx context.Context, triple string) error {
	err := c.run(ctx, "rustup", "target", "add", triple)
	if err != nil {
		return eris.Wrapf(err, "Failed to install target %s", triple)
	}

	return nil
}

// EnsureTool installs crate with cargo install unless binary is already on PATH.
func (c *Cargo) EnsureTool(ctx context.Context, crate, binary string, extraArgs ...string) error {
	if _, err := c.lookPath(binary); err == nil {
		pkg.Log(ctx).Debug().Msgf("%s is already installed", binary)
		return nil
	}

	pkg.PrintSubtask("Installing " + crate)
	args := append([]string{"install", crate}, extraArgs...)
	err := c.cargo(ctx, args...)
	if err != nil {
		return eris.Wrapf(err, "Failed to install %s", crate)
	}

	return nil
}

// Mdbook runs mdbook inside the given book directory (relative to the workspace root).
func (c *Cargo) Mdbook(ctx context.Context, bookDir string, args ...string) error {
	err := c.EnsureTool(ctx, "mdbook", "mdbook")
	if err != nil {
		return err
	}

	return c.exec.Run(ctx, Command{
		Name: "mdbook",
		Args: args,
		Dir:  filepath.Join(c.root, bookDir),
	})
}

// selection describes the packages a cargo subcommand applies to.
type selection struct {
	target  Target
	exclude []string
	only    []string
}

// packageFlags returns the flags selecting packages for a single workspace-wide invocation.
// Excluded packages are dropped from the only list too.
func packageFlags(ctx context.Context, exclude, only []string) []string {
	flags := []string{}
	if len(only) > 0 {
		skip := toSet(exclude)
		for _, name := range only {
			if skip[name] {
				pkg.Log(ctx).Warn().Msgf("Skipping excluded package %s", name)
				continue
			}
			flags = append(flags, "-p", name)
		}
		return flags
	}

	flags = append(flags, "--workspace")
	seen := make(map[string]bool)
	for _, name := range exclude {
		if seen[name] {
			continue
		}
		seen[name] = true
		flags = append(flags, "--exclude", name)
	}

	return flags
}

// runPackages runs `cargo <subcommand>` either once for the whole workspace or once per
// selected member.
func (c *Cargo) runPackages(ctx context.Context, sel selection, env map[string]string, subcommand string, flags ...string) error {
	switch sel.target {
	case TargetWorkspace, "":
		selected := packageFlags(ctx, sel.exclude, sel.only)
		if len(selected) == 0 {
			pkg.Log(ctx).Warn().Msgf("No packages selected for cargo %s", subcommand)
			return nil
		}

		args := append([]string{subcommand}, selected...)
		return c.cargoEnv(ctx, env, append(args, flags...)...)
	case TargetCrates, TargetExamples, TargetAllPackages:
		ws, err := c.Workspace()
		if err != nil {
			return err
		}

		return c.runCrates(ctx, env, subcommand, ws.Select(sel.target, sel.exclude, sel.only), flags)
	}

	return eris.Errorf("Unknown target %s", sel.target)
}

// runCrates runs `cargo <subcommand> -p <crate> <flags...>` for each crate in order and stops
// at the first failure.
func (c *Cargo) runCrates(ctx context.Context, env map[string]string, subcommand string, crates, flags []string) error {
	if len(crates) == 0 {
		pkg.Log(ctx).Warn().Msgf("No packages selected for cargo %s", subcommand)
		return nil
	}

	bar := c.progressBar(len(crates), subcommand)
	for _, name := range crates {
		if err := ctx.Err(); err != nil {
			return err
		}

		args := append([]string{subcommand, "-p", name}, flags...)
		err := c.cargoEnv(ctx, env, args...)
		if err != nil {
			return eris.Wrapf(err, "cargo %s failed for %s", subcommand, name)
		}

		bar.Add(1)
	}
	bar.Finish()

	return nil
}

func (c *Cargo) progressBar(length int, desc string) *progressbar.ProgressBar {
	if ci, _ := c.lookupEnv("CI"); ci == "true" {
		return progressbar.NewOptions(length, progressbar.OptionSetVisibility(false))
	}

	return progressbar.NewOptions(length,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(c.stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			io.WriteString(c.stderr, "\n")
		}),
	)
}
