package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

func newEntryCommand(a *app) *cobra.Command {
	entryCmd := &cobra.Command{
		Use:   "entry",
		Short: "Add, delete and list journal entries",
	}
	entryCmd.AddCommand(
		newEntryAddCommand(a),
		newEntryDeleteCommand(a),
		newEntryListCommand(a),
	)
	return entryCmd
}

func newEntryAddCommand(a *app) *cobra.Command {
	var e model.Entry
	var debit, credit string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append an entry to the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if e.Debit, err = parseAmount("debit", debit); err != nil {
				return err
			}
			if e.Credit, err = parseAmount("credit", credit); err != nil {
				return err
			}
			if e.Date == "" {
				e.Date = time.Now().Format("2006-01-02")
			}

			return a.update(func(book *ledger.Book) error {
				if err := book.AddEntry(e); err != nil {
					return err
				}
				amount := e.Debit
				side := "debit"
				if amount.IsZero() {
					amount, side = e.Credit, "credit"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d: %s %s %s %s/%s\n",
					book.Len(), e.Date, side, book.Format(amount), e.Account, e.Offset)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&e.Date, "date", "", "entry date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&e.Event, "event", "", "description of the event")
	cmd.Flags().StringVar(&e.Account, "account", "", "primary account (required)")
	cmd.Flags().StringVar(&e.Offset, "offset", "", "offset account (required)")
	cmd.Flags().StringVar(&debit, "debit", "", "debit amount")
	cmd.Flags().StringVar(&credit, "credit", "", "credit amount")
	cmd.Flags().StringVar(&e.Category, "category", "", "category label")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("offset")

	return cmd
}

func newEntryDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete an entry by its number in entry list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry number %q", args[0])
			}
			return a.update(func(book *ledger.Book) error {
				if err := book.DeleteEntry(n - 1); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", n)
				return nil
			})
		},
	}
}

func newEntryListCommand(a *app) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the journal with debit and credit totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page < 0 {
				return fmt.Errorf("invalid --page %d: must be 0 or greater", page)
			}
			book, err := a.load()
			if err != nil {
				return err
			}
			return writeEntries(cmd.OutOrStdout(), book, page)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "show one page of entries_per_page entries (0 shows all)")

	return cmd
}

// writeEntries prints the journal as a table. Numbers are 1-based positions
// in the full journal so they can be passed to entry delete.
func writeEntries(out io.Writer, book *ledger.Book, page int) error {
	entries := book.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries.")
		return nil
	}

	start, end := 0, len(entries)
	if page > 0 {
		per := book.Settings().EntriesPerPage
		start = (page - 1) * per
		if start >= len(entries) {
			return fmt.Errorf("page %d is past the last entry", page)
		}
		end = min(start+per, len(entries))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tEVENT\tACCOUNT\tOFFSET\tDEBIT\tCREDIT\tCATEGORY")
	for i := start; i < end; i++ {
		e := entries[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, e.Date, e.Event, e.Account, e.Offset,
			formatNonZero(book, e.Debit), formatNonZero(book, e.Credit), e.Category)
	}
	debit, credit := book.Totals()
	fmt.Fprintf(tw, "\t\t\t\tTOTAL\t%s\t%s\t\n", book.Format(debit), book.Format(credit))
	if err := tw.Flush(); err != nil {
		return err
	}

	if page > 0 {
		fmt.Fprintf(out, "Showing %d-%d of %d\n", start+1, end, len(entries))
	}
	return nil
}

func formatNonZero(book *ledger.Book, d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return book.Format(d)
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s amount %q", field, s)
	}
	return d, nil
}
