package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

// refSet implements ReferenceChecker for testing.
type refSet map[string]bool

func (r refSet) References(name string) bool { return r[name] }

func TestNewRegistry(t *testing.T) {
	chart := DefaultChart()
	reg := NewRegistry(chart)

	assert.Equal(t, len(chart), reg.Len())
	assert.Equal(t, chart, reg.All())
}

func TestNewRegistry_SkipsEmptyNames(t *testing.T) {
	reg := NewRegistry([]model.Account{
		{Name: "Cash", Type: model.AccountTypeAsset},
		{Name: "", Type: model.AccountTypeExpense},
	})
	assert.Equal(t, 1, reg.Len())
	assert.False(t, reg.Exists(""))
}

func TestDefine_LastWriteWins(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Define(model.Account{Name: "Cash", Type: model.AccountTypeAsset}))
	require.NoError(t, reg.Define(model.Account{Name: "Sales", Type: model.AccountTypeRevenue}))
	require.NoError(t, reg.Define(model.Account{Name: "Cash", Type: model.AccountTypeLiability, AllowNegative: true}))

	acct, ok := reg.Lookup("Cash")
	require.True(t, ok)
	assert.Equal(t, model.AccountTypeLiability, acct.Type)
	assert.True(t, acct.AllowNegative)

	// Overwrite keeps the original position.
	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Cash", all[0].Name)
	assert.Equal(t, "Sales", all[1].Name)
}

func TestDefine_EmptyName(t *testing.T) {
	reg := NewRegistry(nil)
	err := reg.Define(model.Account{Type: model.AccountTypeAsset})
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, 0, reg.Len())
}

func TestLookup_CaseSensitive(t *testing.T) {
	reg := NewRegistry([]model.Account{{Name: "Cash", Type: model.AccountTypeAsset}})

	_, ok := reg.Lookup("cash")
	assert.False(t, ok)
	assert.True(t, reg.Exists("Cash"))
	assert.False(t, reg.Exists("CASH"))
}

func TestTypeOf(t *testing.T) {
	reg := NewRegistry([]model.Account{{Name: "Cash", Type: model.AccountTypeAsset}})

	assert.Equal(t, model.AccountTypeAsset, reg.TypeOf("Cash"))
	assert.Equal(t, model.AccountTypeUnknown, reg.TypeOf("Nowhere"))
}

func TestDelete(t *testing.T) {
	reg := NewRegistry(DefaultChart())
	before := reg.Len()

	err := reg.Delete("Savings", refSet{"Cash": true})
	require.NoError(t, err)
	assert.False(t, reg.Exists("Savings"))
	assert.Equal(t, before-1, reg.Len())
	for _, a := range reg.All() {
		assert.NotEqual(t, "Savings", a.Name)
	}
}

func TestDelete_InUse(t *testing.T) {
	reg := NewRegistry(DefaultChart())

	err := reg.Delete("Cash", refSet{"Cash": true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccountInUse)
	assert.True(t, reg.Exists("Cash"), "blocked delete must leave the account")
}

func TestDelete_Undefined(t *testing.T) {
	reg := NewRegistry(nil)
	assert.NoError(t, reg.Delete("Ghost", refSet{}))
}

func TestDelete_UndefinedButReferenced(t *testing.T) {
	reg := NewRegistry(nil)
	assert.ErrorIs(t, reg.Delete("Ghost", refSet{"Ghost": true}), ErrAccountInUse)
}

func TestByType(t *testing.T) {
	reg := NewRegistry(DefaultChart())

	assets := reg.ByType(model.AccountTypeAsset)
	assert.Len(t, assets, 2, "expected Cash + Savings")
	for _, a := range assets {
		assert.Equal(t, model.AccountTypeAsset, a.Type)
	}

	assert.Len(t, reg.ByType(model.AccountTypeExpense), 3)
	assert.Empty(t, reg.ByType("contra-asset"))
}

func TestClear(t *testing.T) {
	reg := NewRegistry(DefaultChart())
	reg.Clear()
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.All())
	require.NoError(t, reg.Define(model.Account{Name: "Cash"}))
	assert.Equal(t, 1, reg.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	reg := NewRegistry(DefaultChart())

	dir := t.TempDir()
	require.NoError(t, reg.Save(dir))

	_, err := os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, reg.All(), loaded.All())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
