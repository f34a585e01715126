package model

// AccountType classifies accounts for reporting. The set is open: types
// outside the known constants are stored and compared as plain strings.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"

	// AccountTypeUnknown is reported for names that have no definition.
	AccountTypeUnknown AccountType = "unknown"
)

// KnownAccountTypes lists the built-in account types in chart order.
var KnownAccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// IsKnown reports whether t is one of the built-in account types.
func (t AccountType) IsKnown() bool {
	for _, k := range KnownAccountTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Account is a row in the chart of accounts. Balances are derived from the
// journal and never stored here.
type Account struct {
	Name          string
	Type          AccountType
	AllowNegative bool
}
