package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/ledger"
)

func newClearCommand(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.update(func(book *ledger.Book) error {
				n := book.Len()
				if all {
					book.Reset()
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries and all accounts\n", n)
					return nil
				}
				book.Clear()
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also delete every account definition")

	return cmd
}
