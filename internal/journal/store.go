package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Store owns the ordered journal and the balances derived from it. Every
// mutation recomputes balances before returning.
type Store struct {
	entries  []model.Entry
	balances model.Balances
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{balances: model.Balances{}}
}

// Add validates an entry and appends it to the end of the journal.
func (s *Store) Add(e model.Entry) error {
	if err := Reject(ValidateEntry(e)); err != nil {
		return err
	}
	s.entries = append(s.entries, e)
	s.Recalculate()
	return nil
}

// Delete removes the entry at a zero-based position.
func (s *Store) Delete(index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("deleting entry %d of %d: %w", index, len(s.entries), ErrIndexOutOfRange)
	}
	s.entries = append(s.entries[:index:index], s.entries[index+1:]...)
	s.Recalculate()
	return nil
}

// Recalculate rebuilds the balance mapping from the journal and returns a copy.
func (s *Store) Recalculate() model.Balances {
	s.balances = Recalculate(s.entries)
	return s.balances.Clone()
}

// Recalculate derives balances from entries. Each entry moves debit-credit
// onto its account and the negation onto its offset, so the result always
// sums to zero.
func Recalculate(entries []model.Entry) model.Balances {
	balances := model.Balances{}
	for _, e := range entries {
		if _, ok := balances[e.Account]; !ok {
			balances[e.Account] = decimal.Zero
		}
		if _, ok := balances[e.Offset]; !ok {
			balances[e.Offset] = decimal.Zero
		}
		net := e.Net()
		balances[e.Account] = balances[e.Account].Add(net)
		balances[e.Offset] = balances[e.Offset].Sub(net)
	}
	return balances
}

// Import replaces the whole journal. Every entry is validated first; on any
// failure the store is left untouched.
func (s *Store) Import(entries []model.Entry) error {
	for i, e := range entries {
		if err := Reject(ValidateEntry(e)); err != nil {
			return fmt.Errorf("%w: entry %d: %w", ErrImport, i+1, err)
		}
	}
	s.entries = append([]model.Entry(nil), entries...)
	s.Recalculate()
	return nil
}

// Export returns a snapshot of the journal.
func (s *Store) Export() []model.Entry {
	return append([]model.Entry(nil), s.entries...)
}

// Entries returns a copy of the journal in insertion order.
func (s *Store) Entries() []model.Entry {
	return s.Export()
}

// Entry returns the entry at a zero-based position.
func (s *Store) Entry(index int) (model.Entry, error) {
	if index < 0 || index >= len(s.entries) {
		return model.Entry{}, fmt.Errorf("entry %d of %d: %w", index, len(s.entries), ErrIndexOutOfRange)
	}
	return s.entries[index], nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Balances returns a copy of the current balances.
func (s *Store) Balances() model.Balances {
	return s.balances.Clone()
}

// Balance returns the balance of one account, zero if never touched.
func (s *Store) Balance(name string) decimal.Decimal {
	return s.balances.Get(name)
}

// References reports whether any entry names the account on either side.
func (s *Store) References(name string) bool {
	for _, e := range s.entries {
		if e.Touches(name) {
			return true
		}
	}
	return false
}

// Totals sums the debit and credit columns.
func (s *Store) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range s.entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit
}

// Clear empties the journal and its balances.
func (s *Store) Clear() {
	s.entries = nil
	s.balances = model.Balances{}
}
