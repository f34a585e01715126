package model

import (
	"github.com/shopspring/decimal"
)

// Entry is a single journal line. Exactly one of Debit and Credit is
// non-zero; the amount flows between Account and Offset.
type Entry struct {
	Date     string          // ISO "YYYY-MM-DD", compared lexically
	Event    string          // free-text description
	Account  string          // primary side
	Offset   string          // contra side
	Debit    decimal.Decimal // zero if credit entry
	Credit   decimal.Decimal // zero if debit entry
	Category string
}

// Net returns the entry's effect on its primary account (debit - credit).
// The offset account receives the negation.
func (e Entry) Net() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// Touches reports whether name is either side of the entry.
func (e Entry) Touches(name string) bool {
	return e.Account == name || e.Offset == name
}

// Balances maps account names to signed balances.
type Balances map[string]decimal.Decimal

// Get returns the balance for name, zero if absent.
func (b Balances) Get(name string) decimal.Decimal {
	return b[name]
}

// Sum adds every balance. For balances derived from a journal it is always zero.
func (b Balances) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// Clone returns an independent copy.
func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
