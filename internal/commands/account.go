package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

func newAccountCommand(a *app) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	accountCmd.AddCommand(
		newAccountDefineCommand(a),
		newAccountDeleteCommand(a),
		newAccountListCommand(a),
	)
	return accountCmd
}

func newAccountDefineCommand(a *app) *cobra.Command {
	var accountType string
	var allowNegative bool

	cmd := &cobra.Command{
		Use:   "define <name>",
		Short: "Define or replace an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acct := model.Account{
				Name:          args[0],
				Type:          model.AccountType(strings.ToLower(strings.TrimSpace(accountType))),
				AllowNegative: allowNegative,
			}
			return a.update(func(book *ledger.Book) error {
				_, existed := book.Lookup(acct.Name)
				if err := book.DefineAccount(acct); err != nil {
					return err
				}
				verb := "Defined"
				if existed {
					verb = "Updated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s account %s (%s)\n", verb, acct.Name, acct.Type)
				if !acct.Type.IsKnown() {
					fmt.Fprintf(cmd.ErrOrStderr(), "note: %q is not a built-in account type and will not appear in reports\n", acct.Type)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "account type: asset, liability, equity, revenue or expense (required)")
	cmd.Flags().BoolVar(&allowNegative, "allow-negative", false, "allow the balance to go below zero")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAccountDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an account no entry references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(func(book *ledger.Book) error {
				if err := book.DeleteAccount(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", args[0])
				return nil
			})
		},
	}
}

func newAccountListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show accounts with their balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, err := a.load()
			if err != nil {
				return err
			}

			rows := book.AccountBalances()
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ACCOUNT\tTYPE\tBALANCE\tALLOW NEGATIVE\t")
			for _, r := range rows {
				allow := "no"
				if r.AllowNegative {
					allow = "yes"
				}
				if !r.Defined {
					allow = "-"
				}
				flag := ""
				if r.Overdrawn {
					flag = "OVERDRAWN"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Type, book.Format(r.Balance), allow, flag)
			}
			return tw.Flush()
		},
	}
}
