package cargo

import (
	"context"
)

type BuildCmdArgs struct {
	Target  Target
	Exclude []string
	Only    []string
}

// Build runs cargo build over the selected packages.
func (c *Cargo) Build(ctx context.Context, args BuildCmdArgs) error {
	return c.runPackages(ctx, selection{args.Target, args.Exclude, args.Only}, nil, "build", "--color", "always")
}

// BuildCrates builds each crate on its own with the given extra flags.
func (c *Cargo) BuildCrates(ctx context.Context, crates, flags []string) error {
	return c.runCrates(ctx, nil, "build", crates, append([]string{"--color", "always"}, flags...))
}

type CompileCmdArgs struct {
	Target  Target
	Exclude []string
	Only    []string
}

// Compile type-checks the selected packages without producing artifacts.
func (c *Cargo) Compile(ctx context.Context, args CompileCmdArgs) error {
	return c.runPackages(ctx, selection{args.Target, args.Exclude, args.Only}, nil, "check", "--color", "always")
}
