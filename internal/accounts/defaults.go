package accounts

import "github.com/cleared-dev/tally/internal/model"

// DefaultChart returns the starter chart of accounts written by `tally init`.
// Cash accounts may not be overdrawn; everything else may carry either sign.
func DefaultChart() []model.Account {
	return []model.Account{
		{Name: "Cash", Type: model.AccountTypeAsset},
		{Name: "Savings", Type: model.AccountTypeAsset},
		{Name: "Credit Card", Type: model.AccountTypeLiability, AllowNegative: true},
		{Name: "Owner's Equity", Type: model.AccountTypeEquity, AllowNegative: true},
		{Name: "Sales", Type: model.AccountTypeRevenue, AllowNegative: true},
		{Name: "Service Revenue", Type: model.AccountTypeRevenue, AllowNegative: true},
		{Name: "Rent", Type: model.AccountTypeExpense, AllowNegative: true},
		{Name: "Office Supplies", Type: model.AccountTypeExpense, AllowNegative: true},
		{Name: "Professional Services", Type: model.AccountTypeExpense, AllowNegative: true},
	}
}
