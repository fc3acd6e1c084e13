package xtask

import (
	"context"

	"github.com/jguhlin/burn/xtask/pkg/cargo"
)

// Toolchain is the set of workspace routines the handlers delegate to. *cargo.Cargo
// implements it.
type Toolchain interface {
	AddTarget(ctx context.Context, triple string) error
	Build(ctx context.Context, args cargo.BuildCmdArgs) error
	BuildCrates(ctx context.Context, crates, flags []string) error
	Test(ctx context.Context, args cargo.TestCmdArgs) error
	TestCrates(ctx context.Context, crates, flags []string) error
	Doc(ctx context.Context, args cargo.DocCmdArgs) error
	Check(ctx context.Context, args cargo.CheckCmdArgs) error
	Fix(ctx context.Context, args cargo.FixCmdArgs) error
	Compile(ctx context.Context, args cargo.CompileCmdArgs) error
	Bump(ctx context.Context, args cargo.BumpCmdArgs) error
	Coverage(ctx context.Context, args cargo.CoverageCmdArgs) error
	Dependencies(ctx context.Context, args cargo.DependenciesCmdArgs) error
	Publish(ctx context.Context, args cargo.PublishCmdArgs) error
	Vulnerabilities(ctx context.Context, args cargo.VulnerabilitiesCmdArgs) error
	Mdbook(ctx context.Context, bookDir string, args ...string) error
}

var _ Toolchain = (*cargo.Cargo)(nil)
