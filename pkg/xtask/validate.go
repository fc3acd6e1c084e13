package xtask

import (
	"context"

	"github.com/jguhlin/burn/xtask/pkg"
	"github.com/jguhlin/burn/xtask/pkg/cargo"
)

// HandleValidate runs everything CI runs, in order, and stops at the first failure. The no-std
// targets are installed unless targetsInstalled says the caller already did.
func HandleValidate(ctx context.Context, tc Toolchain, cfg Config, targetsInstalled bool) error {
	target := cargo.TargetWorkspace

	for _, sub := range []cargo.CheckSubCommand{cargo.CheckAudit, cargo.CheckFormat, cargo.CheckLint, cargo.CheckTypos} {
		err := tc.Check(ctx, cargo.CheckCmdArgs{Target: target, Command: sub})
		if err != nil {
			return err
		}
	}

	pkg.PrintTask("Validate std builds")
	err := HandleBuild(ctx, tc, cfg, cargo.BuildCmdArgs{Target: target}, Std)
	if err != nil {
		return err
	}

	pkg.PrintTask("Validate no-std builds")
	if !targetsInstalled {
		err = installNoStdTargets(ctx, tc, cfg)
		if err != nil {
			return err
		}
	}

	err = HandleBuild(ctx, tc, cfg, cargo.BuildCmdArgs{Target: target}, NoStd)
	if err != nil {
		return err
	}

	pkg.PrintTask("Validate tests")
	err = HandleTest(ctx, tc, cfg, cargo.TestCmdArgs{Target: target}, Std)
	if err != nil {
		return err
	}

	err = HandleTest(ctx, tc, cfg, cargo.TestCmdArgs{Target: target}, NoStd)
	if err != nil {
		return err
	}

	pkg.PrintTask("Validate documentation")
	return HandleDoc(ctx, tc, cfg, cargo.DocCmdArgs{Target: target, Command: cargo.DocBuild})
}

func installNoStdTargets(ctx context.Context, tc Toolchain, cfg Config) error {
	for _, triple := range []string{cfg.WasmTarget, cfg.ArmTarget} {
		err := tc.AddTarget(ctx, triple)
		if err != nil {
			return err
		}
	}

	return nil
}
