// Package report derives read-only financial summaries from the journal and
// the chart of accounts.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Journal is the read side of the ledger store.
type Journal interface {
	Entries() []model.Entry
	Balances() model.Balances
}

// Chart is the read side of the account registry.
type Chart interface {
	Lookup(name string) (model.Account, bool)
	All() []model.Account
}

// Engine answers report queries. It holds no state of its own, so repeated
// calls over an unchanged ledger give identical results.
type Engine struct {
	journal Journal
	chart   Chart
}

// NewEngine creates an Engine over a journal and a chart of accounts.
func NewEngine(journal Journal, chart Chart) *Engine {
	return &Engine{journal: journal, chart: chart}
}

// IncomeStatement summarizes revenue and expense over a range.
type IncomeStatement struct {
	Range     Range
	Revenue   decimal.Decimal
	Expense   decimal.Decimal
	NetIncome decimal.Decimal
}

// AccountBalance is one row of the accounts table.
type AccountBalance struct {
	Name          string
	Type          model.AccountType
	Balance       decimal.Decimal
	AllowNegative bool
	Defined       bool
	// Overdrawn is set when the balance is negative on an account that does not allow it.
	Overdrawn bool
}

// TotalByType sums the signed contributions of entries in r where either side
// is defined with type t: debit-credit for a matching account side and
// credit-debit for a matching offset side. Both apply when both sides match.
func (e *Engine) TotalByType(t model.AccountType, r Range) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range e.journal.Entries() {
		if !r.Contains(entry.Date) {
			continue
		}
		if e.isType(entry.Account, t) {
			total = total.Add(entry.Net())
		}
		if e.isType(entry.Offset, t) {
			total = total.Sub(entry.Net())
		}
	}
	return total
}

// IncomeStatement computes revenue, expense and net income over r.
func (e *Engine) IncomeStatement(r Range) IncomeStatement {
	revenue := e.TotalByType(model.AccountTypeRevenue, r)
	expense := e.TotalByType(model.AccountTypeExpense, r)
	return IncomeStatement{
		Range:     r,
		Revenue:   revenue,
		Expense:   expense,
		NetIncome: revenue.Sub(expense),
	}
}

// AccountBalances lists every defined account with its current balance, in
// chart order, followed by names used in entries but never defined (sorted).
func (e *Engine) AccountBalances() []AccountBalance {
	balances := e.journal.Balances()
	accounts := e.chart.All()

	rows := make([]AccountBalance, 0, len(accounts))
	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		bal := balances.Get(a.Name)
		rows = append(rows, AccountBalance{
			Name:          a.Name,
			Type:          a.Type,
			Balance:       bal,
			AllowNegative: a.AllowNegative,
			Defined:       true,
			Overdrawn:     !a.AllowNegative && bal.IsNegative(),
		})
		seen[a.Name] = true
	}

	var orphans []string
	for name := range balances {
		if !seen[name] {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		rows = append(rows, AccountBalance{
			Name:    name,
			Type:    model.AccountTypeUnknown,
			Balance: balances.Get(name),
		})
	}
	return rows
}

func (e *Engine) isType(name string, t model.AccountType) bool {
	a, ok := e.chart.Lookup(name)
	return ok && a.Type == t
}
