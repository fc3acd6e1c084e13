package xtask

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg"
	"github.com/jguhlin/burn/xtask/pkg/cargo"
)

// Command is one of the top-level xtask commands. The set is closed.
type Command interface {
	isCommand()
}

type (
	BooksCommand           struct{ Args BooksArgs }
	BuildCommand           struct{ Args cargo.BuildCmdArgs }
	BumpCommand            struct{ Args cargo.BumpCmdArgs }
	CheckCommand           struct{ Args cargo.CheckCmdArgs }
	CompileCommand         struct{ Args cargo.CompileCmdArgs }
	CoverageCommand        struct{ Args cargo.CoverageCmdArgs }
	DocCommand             struct{ Args cargo.DocCmdArgs }
	DependenciesCommand    struct{ Args cargo.DependenciesCmdArgs }
	FixCommand             struct{ Args cargo.FixCmdArgs }
	PublishCommand         struct{ Args cargo.PublishCmdArgs }
	TestCommand            struct{ Args cargo.TestCmdArgs }
	ValidateCommand        struct{}
	VulnerabilitiesCommand struct{ Args cargo.VulnerabilitiesCmdArgs }
)

func (BooksCommand) isCommand()           {}
func (BuildCommand) isCommand()           {}
func (BumpCommand) isCommand()            {}
func (CheckCommand) isCommand()           {}
func (CompileCommand) isCommand()         {}
func (CoverageCommand) isCommand()        {}
func (DocCommand) isCommand()             {}
func (DependenciesCommand) isCommand()    {}
func (FixCommand) isCommand()             {}
func (PublishCommand) isCommand()         {}
func (TestCommand) isCommand()            {}
func (ValidateCommand) isCommand()        {}
func (VulnerabilitiesCommand) isCommand() {}

// Router hands each command to its handler.
type Router struct {
	toolchain Toolchain
	config    Config
	env       ExecutionEnvironment
	start     time.Time
	now       func() time.Time
}

// NewRouter creates a router; start is used to report the total execution time.
func NewRouter(tc Toolchain, cfg Config, env ExecutionEnvironment, start time.Time) *Router {
	return &Router{
		toolchain: tc,
		config:    cfg,
		env:       env,
		start:     start,
		now:       time.Now,
	}
}

// Run installs the no-std targets when needed, dispatches command and reports the elapsed time
// once it succeeded. Errors are returned as they are.
func (r *Router) Run(ctx context.Context, command Command) error {
	if r.env == NoStd {
		err := installNoStdTargets(ctx, r.toolchain, r.config)
		if err != nil {
			return err
		}
	}

	err := r.dispatch(ctx, command)
	if err != nil {
		return err
	}

	elapsed := r.now().Sub(r.start)
	pkg.Log(ctx).Info().
		Dur("elapsed", elapsed).
		Msgf("Time elapsed for the current execution: %s", pkg.FormatDuration(elapsed))
	return nil
}

func (r *Router) dispatch(ctx context.Context, command Command) error {
	tc := r.toolchain

	switch cmd := command.(type) {
	case BooksCommand:
		return HandleBooks(ctx, tc, r.config, cmd.Args)
	case BuildCommand:
		return HandleBuild(ctx, tc, r.config, cmd.Args, r.env)
	case BumpCommand:
		return tc.Bump(ctx, cmd.Args)
	case CheckCommand:
		return tc.Check(ctx, cmd.Args)
	case CompileCommand:
		return tc.Compile(ctx, cmd.Args)
	case CoverageCommand:
		return tc.Coverage(ctx, cmd.Args)
	case DocCommand:
		return HandleDoc(ctx, tc, r.config, cmd.Args)
	case DependenciesCommand:
		return tc.Dependencies(ctx, cmd.Args)
	case FixCommand:
		return tc.Fix(ctx, cmd.Args)
	case PublishCommand:
		return tc.Publish(ctx, cmd.Args)
	case TestCommand:
		return HandleTest(ctx, tc, r.config, cmd.Args, r.env)
	case ValidateCommand:
		return HandleValidate(ctx, tc, r.config, r.env == NoStd)
	case VulnerabilitiesCommand:
		return tc.Vulnerabilities(ctx, cmd.Args)
	}

	return eris.Errorf("Unknown command %T", command)
}
