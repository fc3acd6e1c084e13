package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jguhlin/burn/xtask/pkg/cargo"
	"github.com/jguhlin/burn/xtask/pkg/xtask"
)

var bumpCmd = &cobra.Command{
	Use:       "bump [major|minor|patch]",
	Short:     "Bumps the workspace version",
	ValidArgs: cargo.BumpSubCommands,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(xtask.BumpCommand{Args: cargo.BumpCmdArgs{Command: cargo.BumpSubCommand(args[0])}})
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish <crate>",
	Short: "Publishes a crate unless its version is already on crates.io",
	Long: `Publishes a workspace crate to crates.io. The API token is read from
CRATES_IO_API_TOKEN.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(xtask.PublishCommand{Args: cargo.PublishCmdArgs{Name: args[0]}})
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)
	rootCmd.AddCommand(publishCmd)
}
