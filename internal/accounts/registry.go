package accounts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tally/internal/model"
)

var (
	// ErrAccountInUse is returned when deleting an account that journal entries still reference.
	ErrAccountInUse = errors.New("account in use")
	// ErrEmptyName is returned when defining an account without a name.
	ErrEmptyName = errors.New("account name is required")
)

// ReferenceChecker reports whether any journal entry names an account.
type ReferenceChecker interface {
	References(name string) bool
}

// Registry owns the chart of accounts, keyed by case-sensitive name.
type Registry struct {
	order  []string
	byName map[string]model.Account
}

// NewRegistry creates a Registry from a slice of accounts. Later duplicates
// win and accounts with an empty name are skipped.
func NewRegistry(accounts []model.Account) *Registry {
	r := &Registry{byName: make(map[string]model.Account, len(accounts))}
	for _, a := range accounts {
		_ = r.Define(a)
	}
	return r
}

// Define inserts or replaces the account with the same name. Replacing keeps
// the account's original position in All.
func (r *Registry) Define(acct model.Account) error {
	if acct.Name == "" {
		return ErrEmptyName
	}
	if _, ok := r.byName[acct.Name]; !ok {
		r.order = append(r.order, acct.Name)
	}
	r.byName[acct.Name] = acct
	return nil
}

// Delete removes an account unless refs reports it is referenced. Deleting an
// undefined name is a no-op.
func (r *Registry) Delete(name string, refs ReferenceChecker) error {
	if refs != nil && refs.References(name) {
		return fmt.Errorf("deleting %q: %w", name, ErrAccountInUse)
	}
	if _, ok := r.byName[name]; !ok {
		return nil
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Lookup returns an account by name.
func (r *Registry) Lookup(name string) (model.Account, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Exists reports whether an account name is defined.
func (r *Registry) Exists(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// TypeOf returns the type of name, or AccountTypeUnknown when undefined.
func (r *Registry) TypeOf(name string) model.AccountType {
	if a, ok := r.byName[name]; ok {
		return a.Type
	}
	return model.AccountTypeUnknown
}

// All returns all accounts in definition order.
func (r *Registry) All() []model.Account {
	result := make([]model.Account, 0, len(r.order))
	for _, n := range r.order {
		result = append(result, r.byName[n])
	}
	return result
}

// ByType returns all accounts of the given type.
func (r *Registry) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, n := range r.order {
		if a := r.byName[n]; a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Len returns the number of defined accounts.
func (r *Registry) Len() int {
	return len(r.order)
}

// Clear removes every account definition.
func (r *Registry) Clear() {
	r.order = nil
	r.byName = make(map[string]model.Account)
}

// chartPath is the chart of accounts location inside a workspace.
func chartPath(root string) string {
	return filepath.Join(root, "accounts", "chart-of-accounts.csv")
}

// Load reads accounts/chart-of-accounts.csv from a workspace root.
func Load(root string) (*Registry, error) {
	f, err := os.Open(chartPath(root))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewRegistry(accts), nil
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (r *Registry) Save(root string) error {
	path := chartPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, r.All()); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
