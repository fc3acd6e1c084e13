package xtask

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg"
	"github.com/jguhlin/burn/xtask/pkg/cargo"
)

// HandleTest runs the test suites for the given execution environment. No-std crates are only
// tested on the host: test binaries for the WASM and ARM targets can't be executed here.
func HandleTest(ctx context.Context, tc Toolchain, cfg Config, args cargo.TestCmdArgs, env ExecutionEnvironment) error {
	switch env {
	case NoStd:
		pkg.PrintTask("Test no-std crates")
		return tc.TestCrates(ctx, cfg.NoStdCrates, noStdFlags(DefaultTarget))
	case Std:
		args.Exclude = stdExcludes(cfg, args.Exclude)
		err := tc.Test(ctx, args)
		if err != nil {
			return err
		}

		pkg.PrintTask("Test " + cfg.AuxiliaryCrate + " with all features")
		return tc.TestCrates(ctx, []string{cfg.AuxiliaryCrate}, []string{"--all-features"})
	}

	return eris.Errorf("Unknown execution environment %s", env)
}
