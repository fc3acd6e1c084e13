package xtask

import (
	"context"

	"github.com/jguhlin/burn/xtask/pkg/cargo"
)

// HandleDoc documents the workspace minus the backends that don't build on CI.
func HandleDoc(ctx context.Context, tc Toolchain, cfg Config, args cargo.DocCmdArgs) error {
	args.Exclude = stdExcludes(cfg, args.Exclude)
	return tc.Doc(ctx, args)
}
