package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/report"
)

func newReportCommand(a *app) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
	}
	reportCmd.AddCommand(
		newReportIncomeCommand(a),
		newReportTotalCommand(a),
	)
	return reportCmd
}

// rangeFlags are the date filters shared by the report subcommands.
type rangeFlags struct {
	from, to   string
	fiscalYear int
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first date included, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "last date included, YYYY-MM-DD")
	cmd.Flags().IntVar(&f.fiscalYear, "fiscal-year", 0, "report on one fiscal year (uses fiscal_year_start)")
	cmd.MarkFlagsMutuallyExclusive("fiscal-year", "from")
	cmd.MarkFlagsMutuallyExclusive("fiscal-year", "to")
}

func (f *rangeFlags) resolve(fiscalYear func(int) (report.Range, error)) (report.Range, error) {
	if f.fiscalYear != 0 {
		return fiscalYear(f.fiscalYear)
	}
	return report.Range{From: f.from, To: f.to}, nil
}

func newReportIncomeCommand(a *app) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "income",
		Short: "Income statement: revenue, expense and net income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, err := a.load()
			if err != nil {
				return err
			}
			r, err := rf.resolve(book.FiscalYear)
			if err != nil {
				return err
			}

			is := book.IncomeStatement(r)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Income statement (%s)\n", r)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "Revenue\t%s\t\n", book.Format(is.Revenue))
			fmt.Fprintf(tw, "Expense\t%s\t\n", book.Format(is.Expense))
			fmt.Fprintf(tw, "Net income\t%s\t\n", book.Format(is.NetIncome))
			return tw.Flush()
		},
	}
	rf.register(cmd)

	return cmd
}

func newReportTotalCommand(a *app) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "total <type>",
		Short: "Sum of entries touching accounts of one type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.load()
			if err != nil {
				return err
			}
			r, err := rf.resolve(book.FiscalYear)
			if err != nil {
				return err
			}

			t := model.AccountType(strings.ToLower(args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "%s total (%s): %s\n", t, r, book.Format(book.TotalByType(t, r)))
			return nil
		},
	}
	rf.register(cmd)

	return cmd
}
