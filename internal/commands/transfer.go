package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/ledger"
)

func newExportCommand(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:       "export <json|csv>",
		Short:     "Write the journal as JSON or CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: importer.DefaultRegistry().Formats(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := importer.DefaultRegistry().Lookup(args[0])
			if err != nil {
				return err
			}
			book, err := a.load()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating export file: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := p.Write(w, book.ExportEntries()); err != nil {
				return fmt.Errorf("exporting %s: %w", p.Format(), err)
			}
			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", book.Len(), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	return cmd
}

func newImportCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the journal with entries from a JSON or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			p, err := importer.DefaultRegistry().ForFile(path, format)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			entries, err := p.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			return a.update(func(book *ledger.Book) error {
				if err := book.ImportEntries(entries); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s\n", len(entries), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or csv (default from the file extension)")

	return cmd
}
