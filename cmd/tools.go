package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jguhlin/burn/xtask/pkg/cargo"
	"github.com/jguhlin/burn/xtask/pkg/xtask"
)

var coverageCmd = &cobra.Command{
	Use:       "coverage [install|generate]",
	Short:     "Installs the coverage tools or generates lcov.info",
	ValidArgs: cargo.CoverageSubCommands,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := cmd.Flags().GetString("profile")
		if err != nil {
			return err
		}

		ignore, err := cmd.Flags().GetStringSlice("ignore")
		if err != nil {
			return err
		}

		return run(xtask.CoverageCommand{Args: cargo.CoverageCmdArgs{
			Command: cargo.CoverageSubCommand(args[0]),
			Profile: profile,
			Ignore:  ignore,
		}})
	},
}

var dependenciesCmd = &cobra.Command{
	Use:       "dependencies [all|deny|unused]",
	Short:     "Checks the dependency tree",
	ValidArgs: cargo.DependenciesSubCommands,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(xtask.DependenciesCommand{Args: cargo.DependenciesCmdArgs{
			Command: cargo.DependenciesSubCommand(args[0]),
		}})
	},
}

var vulnerabilitiesCmd = &cobra.Command{
	Use:       "vulnerabilities <sanitizer>",
	Short:     "Runs the test suites under the nightly sanitizers",
	ValidArgs: cargo.VulnerabilitiesSubCommands,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(xtask.VulnerabilitiesCommand{Args: cargo.VulnerabilitiesCmdArgs{
			Command: cargo.VulnerabilitiesSubCommand(args[0]),
		}})
	},
}

func init() {
	coverageCmd.Flags().String("profile", "debug", "cargo profile the instrumented binaries were built with")
	coverageCmd.Flags().StringSlice("ignore", nil, "additional path patterns to leave out of the report")

	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(dependenciesCmd)
	rootCmd.AddCommand(vulnerabilitiesCmd)
}
