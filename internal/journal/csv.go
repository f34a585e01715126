package journal

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Fields is the fixed column order of a CSV export. Exports carry no header.
var Fields = []string{"date", "event", "account", "offset", "debit", "credit", "category"}

const (
	numFields   = 7
	colDate     = 0
	colEvent    = 1
	colAccount  = 2
	colOffset   = 3
	colDebit    = 4
	colCredit   = 5
	colCategory = 6
)

// ReadCSV reads entries from a headerless CSV export.
func ReadCSV(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading entries CSV: %w", ErrImport, err)
	}

	entries := make([]model.Entry, 0, len(records))
	for i, rec := range records {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrImport, i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteCSV writes one line per entry in Fields order.
func WriteCSV(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e model.Entry) []string {
	row := make([]string, numFields)
	row[colDate] = e.Date
	row[colEvent] = e.Event
	row[colAccount] = e.Account
	row[colOffset] = e.Offset
	row[colDebit] = e.Debit.String()
	row[colCredit] = e.Credit.String()
	row[colCategory] = e.Category
	return row
}

// UnmarshalEntry converts a CSV row to an Entry. Empty amounts read as zero.
func UnmarshalEntry(record []string) (model.Entry, error) {
	if len(record) != numFields {
		return model.Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	debit, err := parseAmount("debit", record[colDebit])
	if err != nil {
		return model.Entry{}, err
	}
	credit, err := parseAmount("credit", record[colCredit])
	if err != nil {
		return model.Entry{}, err
	}

	return model.Entry{
		Date:     record[colDate],
		Event:    record[colEvent],
		Account:  record[colAccount],
		Offset:   record[colOffset],
		Debit:    debit,
		Credit:   credit,
		Category: record[colCategory],
	}, nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}
