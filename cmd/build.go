package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jguhlin/burn/xtask/pkg/cargo"
	"github.com/jguhlin/burn/xtask/pkg/xtask"
)

// addSelectionFlags registers the package selection flags shared by build, test, compile and doc.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("target", "t", string(cargo.TargetWorkspace), "packages to operate on: workspace, crates, examples or all-packages")
	cmd.Flags().StringSlice("exclude", nil, "packages to leave out")
	cmd.Flags().StringSlice("only", nil, "only operate on these packages")
}

func selectionFlags(cmd *cobra.Command) (cargo.Target, []string, []string, error) {
	rawTarget, err := cmd.Flags().GetString("target")
	if err != nil {
		return "", nil, nil, err
	}

	target, err := cargo.ParseTarget(rawTarget)
	if err != nil {
		return "", nil, nil, err
	}

	exclude, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return "", nil, nil, err
	}

	only, err := cmd.Flags().GetStringSlice("only")
	if err != nil {
		return "", nil, nil, err
	}

	return target, exclude, only, nil
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the workspace",
	Long: `Builds the workspace. In the std environment the GPU backends that can't be built on CI
are excluded (set DISABLE_WGPU to also exclude burn-wgpu). In the no-std environment the no-std
crates are built for the host, WASM and ARM targets.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, exclude, only, err := selectionFlags(cmd)
		if err != nil {
			return err
		}

		return run(xtask.BuildCommand{Args: cargo.BuildCmdArgs{
			Target:  target,
			Exclude: exclude,
			Only:    only,
		}})
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Type-checks the workspace with cargo check",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, exclude, only, err := selectionFlags(cmd)
		if err != nil {
			return err
		}

		return run(xtask.CompileCommand{Args: cargo.CompileCmdArgs{
			Target:  target,
			Exclude: exclude,
			Only:    only,
		}})
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Runs the test suites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, exclude, only, err := selectionFlags(cmd)
		if err != nil {
			return err
		}

		threads, err := cmd.Flags().GetInt("threads")
		if err != nil {
			return err
		}

		return run(xtask.TestCommand{Args: cargo.TestCmdArgs{
			Target:  target,
			Exclude: exclude,
			Only:    only,
			Threads: threads,
		}})
	},
}

var docCmd = &cobra.Command{
	Use:       "doc [build|tests]",
	Short:     "Builds the documentation or runs the doc tests",
	ValidArgs: cargo.DocSubCommands,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, exclude, only, err := selectionFlags(cmd)
		if err != nil {
			return err
		}

		return run(xtask.DocCommand{Args: cargo.DocCmdArgs{
			Target:  target,
			Exclude: exclude,
			Only:    only,
			Command: cargo.DocSubCommand(args[0]),
		}})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{buildCmd, compileCmd, testCmd, docCmd} {
		addSelectionFlags(cmd)
		rootCmd.AddCommand(cmd)
	}

	testCmd.Flags().Int("threads", 0, "number of test threads (0 lets cargo decide)")
}
