package xtask

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg/cargo"
)

// call is one recorded toolchain invocation.
type call struct {
	method  string
	crates  []string
	flags   []string
	exclude []string
	detail  string
}

func (c call) String() string {
	parts := []string{c.method}
	if c.detail != "" {
		parts = append(parts, c.detail)
	}
	if c.crates != nil {
		parts = append(parts, "crates="+strings.Join(c.crates, ","))
	}
	if c.flags != nil {
		parts = append(parts, "flags="+strings.Join(c.flags, " "))
	}
	if c.exclude != nil {
		parts = append(parts, "exclude="+strings.Join(c.exclude, ","))
	}
	return strings.Join(parts, " ")
}

type fakeToolchain struct {
	calls []call
	// failAt makes the call with this index (0-based) fail.
	failAt int
}

func newFakeToolchain() *fakeToolchain {
	return &fakeToolchain{failAt: -1}
}

func (f *fakeToolchain) record(c call) error {
	f.calls = append(f.calls, c)
	if len(f.calls)-1 == f.failAt {
		return eris.Errorf("%s failed", c.method)
	}
	return nil
}

func (f *fakeToolchain) lines() []string {
	result := make([]string, len(f.calls))
	for idx, c := range f.calls {
		result[idx] = c.String()
	}
	return result
}

func copyOrEmpty(items []string) []string {
	return append([]string{}, items...)
}

func (f *fakeToolchain) AddTarget(_ context.Context, triple string) error {
	return f.record(call{method: "AddTarget", detail: triple})
}

func (f *fakeToolchain) Build(_ context.Context, args cargo.BuildCmdArgs) error {
	return f.record(call{method: "Build", detail: string(args.Target), exclude: copyOrEmpty(args.Exclude)})
}

func (f *fakeToolchain) BuildCrates(_ context.Context, crates, flags []string) error {
	return f.record(call{method: "BuildCrates", crates: copyOrEmpty(crates), flags: copyOrEmpty(flags)})
}

func (f *fakeToolchain) Test(_ context.Context, args cargo.TestCmdArgs) error {
	return f.record(call{method: "Test", detail: string(args.Target), exclude: copyOrEmpty(args.Exclude)})
}

func (f *fakeToolchain) TestCrates(_ context.Context, crates, flags []string) error {
	return f.record(call{method: "TestCrates", crates: copyOrEmpty(crates), flags: copyOrEmpty(flags)})
}

func (f *fakeToolchain) Doc(_ context.Context, args cargo.DocCmdArgs) error {
	return f.record(call{method: "Doc", detail: string(args.Command), exclude: copyOrEmpty(args.Exclude)})
}

func (f *fakeToolchain) Check(_ context.Context, args cargo.CheckCmdArgs) error {
	return f.record(call{method: "Check", detail: string(args.Command)})
}

func (f *fakeToolchain) Fix(_ context.Context, args cargo.FixCmdArgs) error {
	return f.record(call{method: "Fix", detail: string(args.Command)})
}

func (f *fakeToolchain) Compile(_ context.Context, args cargo.CompileCmdArgs) error {
	return f.record(call{method: "Compile", detail: string(args.Target)})
}

func (f *fakeToolchain) Bump(_ context.Context, args cargo.BumpCmdArgs) error {
	return f.record(call{method: "Bump", detail: string(args.Command)})
}

func (f *fakeToolchain) Coverage(_ context.Context, args cargo.CoverageCmdArgs) error {
	return f.record(call{method: "Coverage", detail: string(args.Command)})
}

func (f *fakeToolchain) Dependencies(_ context.Context, args cargo.DependenciesCmdArgs) error {
	return f.record(call{method: "Dependencies", detail: string(args.Command)})
}

func (f *fakeToolchain) Publish(_ context.Context, args cargo.PublishCmdArgs) error {
	return f.record(call{method: "Publish", detail: args.Name})
}

func (f *fakeToolchain) Vulnerabilities(_ context.Context, args cargo.VulnerabilitiesCmdArgs) error {
	return f.record(call{method: "Vulnerabilities", detail: string(args.Command)})
}

func (f *fakeToolchain) Mdbook(_ context.Context, bookDir string, args ...string) error {
	return f.record(call{method: "Mdbook", detail: fmt.Sprintf("%s %s", bookDir, strings.Join(args, " "))})
}
