package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cleared-dev/tally/internal/model"
)

// record is the JSON shape of an exported entry. Amounts are JSON numbers;
// quoted numbers are accepted on input.
type record struct {
	Date     string      `json:"date"`
	Event    string      `json:"event"`
	Account  string      `json:"account"`
	Offset   string      `json:"offset"`
	Debit    json.Number `json:"debit"`
	Credit   json.Number `json:"credit"`
	Category string      `json:"category"`
}

// ReadJSON reads a JSON array of entry objects. Anything else fails with ErrImport.
func ReadJSON(r io.Reader) ([]model.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading payload: %w", ErrImport, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: payload is not an array", ErrImport)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: parsing payload: %w", ErrImport, err)
	}

	entries := make([]model.Entry, 0, len(raws))
	for i, raw := range raws {
		if len(raw) == 0 || raw[0] != '{' {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrImport, i+1)
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrImport, i+1, err)
		}
		e, err := rec.entry()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrImport, i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []model.Entry) error {
	recs := make([]record, len(entries))
	for i, e := range entries {
		recs[i] = record{
			Date:     e.Date,
			Event:    e.Event,
			Account:  e.Account,
			Offset:   e.Offset,
			Debit:    json.Number(e.Debit.String()),
			Credit:   json.Number(e.Credit.String()),
			Category: e.Category,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	return nil
}

func (r record) entry() (model.Entry, error) {
	debit, err := parseAmount("debit", r.Debit.String())
	if err != nil {
		return model.Entry{}, err
	}
	credit, err := parseAmount("credit", r.Credit.String())
	if err != nil {
		return model.Entry{}, err
	}
	return model.Entry{
		Date:     r.Date,
		Event:    r.Event,
		Account:  r.Account,
		Offset:   r.Offset,
		Debit:    debit,
		Credit:   credit,
		Category: r.Category,
	}, nil
}
