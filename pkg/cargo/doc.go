package cargo

import (
	"context"

	"github.com/rotisserie/eris"
)

type DocSubCommand string

const (
	DocBuild DocSubCommand = "build"
	DocTests DocSubCommand = "tests"
)

var DocSubCommands = []string{string(DocBuild), string(DocTests)}

type DocCmdArgs struct {
	Target  Target
	Exclude []string
	Only    []string
	Command DocSubCommand
}

// Doc either builds the API documentation (warnings are errors) or runs the doc tests.
func (c *Cargo) Doc(ctx context.Context, args DocCmdArgs) error {
	sel := selection{args.Target, args.Exclude, args.Only}

	switch args.Command {
	case DocBuild, "":
		env := map[string]string{"RUSTDOCFLAGS": "-D warnings"}
		return c.runPackages(ctx, sel, env, "doc", "--no-deps", "--color", "always")
	case DocTests:
		return c.runPackages(ctx, sel, nil, "test", "--doc", "--color", "always")
	}

	return eris.Errorf("Unknown doc command %s", args.Command)
}
