package journal

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestAdd_Scenario(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))

	bal := s.Balances()
	assert.Len(t, bal, 2)
	assert.True(t, bal.Get("Cash").Equal(dec("-100")), "Cash: %s", bal.Get("Cash"))
	assert.True(t, bal.Get("Sales").Equal(dec("100")), "Sales: %s", bal.Get("Sales"))
	assert.True(t, bal.Sum().IsZero())
}

func TestAdd_Rejected(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))

	for _, bad := range []model.Entry{
		entry("2024-01-02", "Cash", "Sales", "10", "10"),
		entry("2024-01-02", "Cash", "Sales", "0", "0"),
	} {
		err := s.Add(bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEntry)
	}

	assert.Equal(t, 1, s.Len(), "rejected entries must not be stored")
	assert.True(t, s.Balance("Cash").Equal(dec("-100")))
}

func TestAdd_AppendsInOrder(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-03-01", "Rent", "Cash", "50", "0")))
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))

	got := s.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-01", got[0].Date, "insertion order, not date order")
	assert.Equal(t, "2024-01-01", got[1].Date)
}

func TestDelete(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))
	require.NoError(t, s.Add(entry("2024-01-02", "Rent", "Cash", "40", "0")))

	require.NoError(t, s.Delete(0))
	require.Equal(t, 1, s.Len())

	bal := s.Balances()
	assert.True(t, bal.Get("Cash").Equal(dec("-40")))
	assert.True(t, bal.Get("Rent").Equal(dec("40")))
	_, ok := bal["Sales"]
	assert.False(t, ok, "untouched accounts disappear after recompute")
}

func TestDelete_OutOfRange(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))

	for _, idx := range []int{-1, 1, 5} {
		err := s.Delete(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
	assert.Equal(t, 1, s.Len())
}

func TestEntry(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))

	e, err := s.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "Cash", e.Account)

	_, err = s.Entry(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRecalculate_Idempotent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))
	require.NoError(t, s.Add(entry("2024-01-05", "Rent", "Cash", "30.25", "0")))

	first := s.Recalculate()
	second := s.Recalculate()
	require.Len(t, second, len(first))
	for name, v := range first {
		assert.True(t, v.Equal(second[name]), "%s: %s != %s", name, v, second[name])
	}
}

func TestRecalculate_OrderIndependent(t *testing.T) {
	entries := []model.Entry{
		entry("2024-01-01", "Cash", "Sales", "0", "100"),
		entry("2024-01-02", "Rent", "Cash", "40", "0"),
		entry("2024-01-03", "Cash", "Owner", "250", "0"),
	}
	reversed := []model.Entry{entries[2], entries[1], entries[0]}

	a := Recalculate(entries)
	b := Recalculate(reversed)
	require.Len(t, b, len(a))
	for name, v := range a {
		assert.True(t, v.Equal(b[name]), "%s", name)
	}
}

func TestRecalculate_SelfTransfer(t *testing.T) {
	bal := Recalculate([]model.Entry{entry("2024-01-01", "Cash", "Cash", "10", "0")})
	assert.True(t, bal.Get("Cash").IsZero())
}

func TestBalancesSumToZero(t *testing.T) {
	names := []string{"Cash", "Sales", "Rent", "Owner", "Card"}
	rng := rand.New(rand.NewSource(42))
	s := NewStore()

	for i := 0; i < 500; i++ {
		if s.Len() > 0 && rng.Intn(4) == 0 {
			require.NoError(t, s.Delete(rng.Intn(s.Len())))
		} else {
			amount := decimal.New(int64(rng.Intn(100000)+1), -2)
			e := model.Entry{
				Date:    "2024-01-01",
				Account: names[rng.Intn(len(names))],
				Offset:  names[rng.Intn(len(names))],
			}
			if rng.Intn(2) == 0 {
				e.Debit = amount
			} else {
				e.Credit = amount
			}
			require.NoError(t, s.Add(e))
		}
		assert.True(t, s.Balances().Sum().IsZero(), "step %d: sum %s", i, s.Balances().Sum())
	}
}

func TestReferences(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))

	assert.True(t, s.References("Cash"))
	assert.True(t, s.References("Sales"))
	assert.False(t, s.References("Rent"))
}

func TestImport_ReplacesJournal(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))

	err := s.Import([]model.Entry{
		entry("2024-02-01", "Rent", "Cash", "75", "0"),
		entry("2024-02-02", "Cash", "Sales", "0", "20"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Balance("Cash").Equal(dec("-95")))
	assert.True(t, s.Balance("Sales").Equal(dec("20")))
	assert.True(t, s.Balance("Rent").Equal(dec("75")))
}

func TestImport_InvalidLeavesStoreUnchanged(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))
	before := s.Export()

	err := s.Import([]model.Entry{
		entry("2024-02-01", "Rent", "Cash", "75", "0"),
		entry("2024-02-02", "Cash", "Sales", "5", "5"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImport)
	assert.ErrorIs(t, err, ErrInvalidEntry)
	assert.Contains(t, err.Error(), "entry 2")

	assert.Equal(t, before, s.Export())
	assert.True(t, s.Balance("Cash").Equal(dec("-100")))
}

func TestImport_Empty(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))
	require.NoError(t, s.Import(nil))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Balances())
}

func TestExport_IsSnapshot(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))

	snap := s.Export()
	snap[0].Account = "Mutated"
	require.NoError(t, s.Add(entry("2024-01-02", "Rent", "Cash", "1", "0")))

	got, err := s.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "Cash", got.Account)
	assert.Len(t, snap, 1)
}

func TestBalances_IsSnapshot(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))

	bal := s.Balances()
	bal["Cash"] = dec("999")
	assert.True(t, s.Balance("Cash").Equal(dec("-100")))
}

func TestTotals(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))
	require.NoError(t, s.Add(entry("2024-01-02", "Rent", "Cash", "40.50", "0")))

	debit, credit := s.Totals()
	assert.True(t, debit.Equal(dec("40.50")))
	assert.True(t, credit.Equal(dec("100")))
}

func TestClear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(entry("2024-01-01", "Cash", "Sales", "0", "100")))
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Balances())
	assert.False(t, s.References("Cash"))
}
