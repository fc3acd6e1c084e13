package xtask

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg"
	"github.com/jguhlin/burn/xtask/pkg/cargo"
)

// stdExcludes returns exclude extended with the crates that can't be built in a standard CI
// environment. exclude itself is left untouched.
func stdExcludes(cfg Config, exclude []string) []string {
	result := make([]string, 0, len(exclude)+len(cfg.UnsupportedCrates)+1)
	result = append(result, exclude...)
	result = append(result, cfg.UnsupportedCrates...)
	if cfg.DisableWgpu && cfg.WgpuCrate != "" {
		result = append(result, cfg.WgpuCrate)
	}

	return result
}

// noStdFlags composes the flags for one no-std target.
func noStdFlags(target string) []string {
	flags := []string{"--no-default-features"}
	if target != DefaultTarget {
		flags = append(flags, "--target", target)
	}

	return flags
}

// HandleBuild builds the workspace for the given execution environment.
//
// NoStd builds the no-std crates once per no-std target. Std builds the workspace without the
// unsupported backends, then builds the auxiliary crate with all of its features.
func HandleBuild(ctx context.Context, tc Toolchain, cfg Config, args cargo.BuildCmdArgs, env ExecutionEnvironment) error {
	switch env {
	case NoStd:
		for _, target := range cfg.NoStdTargets() {
			pkg.PrintTask("Build no-std crates for " + target)
			err := tc.BuildCrates(ctx, cfg.NoStdCrates, noStdFlags(target))
			if err != nil {
				return err
			}
		}
		return nil
	case Std:
		args.Exclude = stdExcludes(cfg, args.Exclude)
		err := tc.Build(ctx, args)
		if err != nil {
			return err
		}

		pkg.PrintTask("Build " + cfg.AuxiliaryCrate + " with all features")
		return tc.BuildCrates(ctx, []string{cfg.AuxiliaryCrate}, []string{"--all-features"})
	}

	return eris.Errorf("Unknown execution environment %s", env)
}
