// Package ledger ties the account registry, the journal and the report engine
// together behind a single application object.
package ledger

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/report"
)

// Error sentinels callers check with errors.Is.
var (
	ErrInvalidEntry    = journal.ErrInvalidEntry
	ErrIndexOutOfRange = journal.ErrIndexOutOfRange
	ErrImport          = journal.ErrImport
	ErrAccountInUse    = accounts.ErrAccountInUse
)

// Book is the in-memory state of one set of books. It is not safe for
// concurrent use.
type Book struct {
	registry *accounts.Registry
	store    *journal.Store
	reports  *report.Engine
	settings *config.Settings
	logger   *slog.Logger
}

// New creates a Book with the given settings and chart of accounts and an
// empty journal. A nil settings uses config.Default; a nil logger discards.
func New(settings *config.Settings, chart []model.Account, logger *slog.Logger) *Book {
	if settings == nil {
		settings = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	registry := accounts.NewRegistry(chart)
	store := journal.NewStore()
	return &Book{
		registry: registry,
		store:    store,
		reports:  report.NewEngine(store, registry),
		settings: settings,
		logger:   logger,
	}
}

// AddEntry validates an entry and appends it to the journal. With strict
// validation on, entries naming undefined accounts or overdrawing an account
// that disallows negative balances are rejected as well.
func (b *Book) AddEntry(e model.Entry) error {
	violations := journal.ValidateEntry(e)
	if b.settings.StrictValidation && len(violations) == 0 {
		violations = append(violations, b.undefinedAccounts(e)...)
		if len(violations) == 0 {
			after := journal.Recalculate(append(b.store.Entries(), e))
			violations = append(violations, b.overdrawn(after, e.Account, e.Offset)...)
		}
	}
	if err := journal.Reject(violations); err != nil {
		b.logger.Warn("entry rejected", "account", e.Account, "offset", e.Offset, "error", err)
		return err
	}
	if err := b.store.Add(e); err != nil {
		return err
	}
	b.logger.Debug("entry added",
		"index", b.store.Len()-1,
		"date", e.Date,
		"account", e.Account,
		"offset", e.Offset,
		"debit", e.Debit.String(),
		"credit", e.Credit.String(),
	)
	return nil
}

// DeleteEntry removes the entry at a zero-based position.
func (b *Book) DeleteEntry(index int) error {
	if err := b.store.Delete(index); err != nil {
		b.logger.Warn("entry delete rejected", "index", index, "error", err)
		return err
	}
	b.logger.Debug("entry deleted", "index", index)
	return nil
}

// DefineAccount inserts or replaces an account definition.
func (b *Book) DefineAccount(acct model.Account) error {
	if err := b.registry.Define(acct); err != nil {
		b.logger.Warn("account define rejected", "error", err)
		return err
	}
	b.logger.Debug("account defined", "name", acct.Name, "type", string(acct.Type), "allow_negative", acct.AllowNegative)
	return nil
}

// DeleteAccount removes an account definition unless an entry references it.
func (b *Book) DeleteAccount(name string) error {
	if err := b.registry.Delete(name, b.store); err != nil {
		b.logger.Warn("account delete rejected", "name", name, "error", err)
		return err
	}
	b.logger.Debug("account deleted", "name", name)
	return nil
}

// Lookup returns an account definition by name.
func (b *Book) Lookup(name string) (model.Account, bool) {
	return b.registry.Lookup(name)
}

// Accounts returns the chart of accounts in definition order.
func (b *Book) Accounts() []model.Account {
	return b.registry.All()
}

// Entries returns a copy of the journal.
func (b *Book) Entries() []model.Entry {
	return b.store.Entries()
}

// Len returns the number of journal entries.
func (b *Book) Len() int {
	return b.store.Len()
}

// Balances returns a copy of the derived balances.
func (b *Book) Balances() model.Balances {
	return b.store.Balances()
}

// Balance returns one account balance, zero if never touched.
func (b *Book) Balance(name string) decimal.Decimal {
	return b.store.Balance(name)
}

// Totals sums the debit and credit columns of the journal.
func (b *Book) Totals() (debit, credit decimal.Decimal) {
	return b.store.Totals()
}

// AccountBalances lists accounts with their balances for display.
func (b *Book) AccountBalances() []report.AccountBalance {
	return b.reports.AccountBalances()
}

// TotalByType sums contributions to accounts of one type over a date range.
func (b *Book) TotalByType(t model.AccountType, r report.Range) decimal.Decimal {
	return b.reports.TotalByType(t, r)
}

// IncomeStatement computes revenue, expense and net income over a date range.
func (b *Book) IncomeStatement(r report.Range) report.IncomeStatement {
	return b.reports.IncomeStatement(r)
}

// FiscalYear returns the date range of a fiscal year using the
// fiscal_year_start setting.
func (b *Book) FiscalYear(year int) (report.Range, error) {
	month, err := b.settings.FiscalStartMonth()
	if err != nil {
		return report.Range{}, err
	}
	return report.FiscalYear(year, month)
}

// Format renders an amount with the configured currency symbol and places.
func (b *Book) Format(amount decimal.Decimal) string {
	return b.settings.Formatter().Format(amount)
}

// ImportEntries replaces the journal. Nothing changes unless every entry is
// accepted.
func (b *Book) ImportEntries(entries []model.Entry) error {
	if b.settings.StrictValidation {
		if err := b.checkImport(entries); err != nil {
			b.logger.Warn("import rejected", "entries", len(entries), "error", err)
			return err
		}
	}
	if err := b.store.Import(entries); err != nil {
		b.logger.Warn("import rejected", "entries", len(entries), "error", err)
		return err
	}
	b.logger.Debug("entries imported", "entries", len(entries))
	return nil
}

// ExportEntries returns a snapshot of the journal.
func (b *Book) ExportEntries() []model.Entry {
	return b.store.Export()
}

// Clear empties the journal and its balances. Accounts are kept.
func (b *Book) Clear() {
	b.store.Clear()
	b.logger.Debug("journal cleared")
}

// Reset empties the journal and removes every account definition.
func (b *Book) Reset() {
	b.store.Clear()
	b.registry.Clear()
	b.logger.Debug("book reset")
}

// Settings returns a copy of the current settings.
func (b *Book) Settings() *config.Settings {
	s := *b.settings
	return &s
}

// SetSettings replaces the settings after validating them.
func (b *Book) SetSettings(s *config.Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	cp := *s
	b.settings = &cp
	b.logger.Debug("settings updated")
	return nil
}

func (b *Book) checkImport(entries []model.Entry) error {
	for i, e := range entries {
		violations := append(journal.ValidateEntry(e), b.undefinedAccounts(e)...)
		if err := journal.Reject(violations); err != nil {
			return fmt.Errorf("%w: entry %d: %w", ErrImport, i+1, err)
		}
	}
	var names []string
	for _, a := range b.registry.All() {
		names = append(names, a.Name)
	}
	if err := journal.Reject(b.overdrawn(journal.Recalculate(entries), names...)); err != nil {
		return fmt.Errorf("%w: %w", ErrImport, err)
	}
	return nil
}

func (b *Book) undefinedAccounts(e model.Entry) []journal.ValidationError {
	var errs []journal.ValidationError
	for _, name := range []string{e.Account, e.Offset} {
		if !b.registry.Exists(name) {
			errs = append(errs, journal.ValidationError{
				Rule:        journal.RuleDefinedAccount,
				Description: fmt.Sprintf("account %q is not defined", name),
			})
		}
	}
	return errs
}

// overdrawn reports names whose balance is negative while their definition
// disallows it. Undefined names are skipped.
func (b *Book) overdrawn(balances model.Balances, names ...string) []journal.ValidationError {
	var errs []journal.ValidationError
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		acct, ok := b.registry.Lookup(name)
		if !ok || acct.AllowNegative {
			continue
		}
		if bal := balances.Get(name); bal.IsNegative() {
			errs = append(errs, journal.ValidationError{
				Rule:        journal.RuleNegativeBalance,
				Description: fmt.Sprintf("account %q would be %s and does not allow negative balances", name, b.Format(bal)),
			})
		}
	}
	return errs
}
