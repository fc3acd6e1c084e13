package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jguhlin/burn/xtask/pkg/cargo"
	"github.com/jguhlin/burn/xtask/pkg/xtask"
)

func targetFlag(cmd *cobra.Command) (cargo.Target, error) {
	rawTarget, err := cmd.Flags().GetString("target")
	if err != nil {
		return "", err
	}

	return cargo.ParseTarget(rawTarget)
}

var checkCmd = &cobra.Command{
	Use:       "check [all|audit|format|lint|typos]",
	Short:     "Runs the code checks without changing anything",
	ValidArgs: cargo.CheckSubCommands,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := targetFlag(cmd)
		if err != nil {
			return err
		}

		return run(xtask.CheckCommand{Args: cargo.CheckCmdArgs{
			Target:  target,
			Command: cargo.CheckSubCommand(args[0]),
		}})
	},
}

var fixCmd = &cobra.Command{
	Use:       "fix [all|audit|format|lint|typos]",
	Short:     "Applies the automatic fixes for the code checks",
	ValidArgs: cargo.CheckSubCommands,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := targetFlag(cmd)
		if err != nil {
			return err
		}

		return run(xtask.FixCommand{Args: cargo.FixCmdArgs{
			Target:  target,
			Command: cargo.CheckSubCommand(args[0]),
		}})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Runs every check, build, test and doc step CI runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(xtask.ValidateCommand{})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{checkCmd, fixCmd} {
		cmd.Flags().StringP("target", "t", string(cargo.TargetWorkspace), "packages to operate on: workspace, crates, examples or all-packages")
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(validateCmd)
}
