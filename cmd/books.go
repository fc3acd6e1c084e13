package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jguhlin/burn/xtask/pkg/xtask"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Builds, opens or tests the Burn books",
}

func newBookCmd(book xtask.Book, short string) *cobra.Command {
	return &cobra.Command{
		Use:       string(book) + " [build|open|test]",
		Short:     short,
		ValidArgs: xtask.BookCommands,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(xtask.BooksCommand{Args: xtask.BooksArgs{
				Book:    book,
				Command: xtask.BookCommand(args[0]),
			}})
		},
	}
}

func init() {
	booksCmd.AddCommand(newBookCmd(xtask.BurnBook, "The Burn book for users"))
	booksCmd.AddCommand(newBookCmd(xtask.ContributorBook, "The contributor book"))

	rootCmd.AddCommand(booksCmd)
}
