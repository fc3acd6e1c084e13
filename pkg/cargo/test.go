package cargo

import (
	"context"
	"strconv"
)

type TestCmdArgs struct {
	Target  Target
	Exclude []string
	Only    []string
	// Threads limits --test-threads when non-zero.
	Threads int
}

// Test runs the test suites of the selected packages.
func (c *Cargo) Test(ctx context.Context, args TestCmdArgs) error {
	flags := []string{"--color", "always"}
	if args.Threads > 0 {
		flags = append(flags, "--", "--test-threads", strconv.Itoa(args.Threads))
	}

	return c.runPackages(ctx, selection{args.Target, args.Exclude, args.Only}, nil, "test", flags...)
}

// TestCrates tests each crate on its own with the given extra flags.
func (c *Cargo) TestCrates(ctx context.Context, crates, flags []string) error {
	return c.runCrates(ctx, nil, "test", crates, append([]string{"--color", "always"}, flags...))
}
