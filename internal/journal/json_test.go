package journal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestWriteJSON_Shape(t *testing.T) {
	entries := []model.Entry{
		{Date: "2024-01-01", Event: "Sale", Account: "Cash", Offset: "Sales", Credit: dec("100"), Category: "retail"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, entries))

	want := `[
  {
    "date": "2024-01-01",
    "event": "Sale",
    "account": "Cash",
    "offset": "Sales",
    "debit": 0,
    "credit": 100,
    "category": "retail"
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONRoundTrip(t *testing.T) {
	entries := []model.Entry{
		{Date: "2024-01-01", Event: "Sale", Account: "Cash", Offset: "Sales", Credit: dec("100")},
		{Date: "2024-01-05", Event: "Rent, January", Account: "Rent", Offset: "Cash", Debit: dec("0.1").Add(dec("0.2")), Category: "office"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, entries))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Rent, January", got[1].Event)
	assert.True(t, got[1].Debit.Equal(dec("0.3")), "decimal amounts survive exactly, got %s", got[1].Debit)
	assert.True(t, got[0].Credit.Equal(dec("100")))
}

func TestReadJSON_QuotedAndMissingAmounts(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(`[{"date":"2024-01-01","account":"Cash","offset":"Sales","credit":"12.50"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Debit.IsZero())
	assert.True(t, got[0].Credit.Equal(dec("12.5")))
}

func TestReadJSON_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"object", `{"date":"2024-01-01"}`},
		{"null", `null`},
		{"number", `42`},
		{"broken", `[{"date":`},
		{"array of numbers", `[1, 2]`},
		{"array of strings", `["a"]`},
		{"wrong field type", `[{"account": 5}]`},
		{"non-numeric amount", `[{"account":"Cash","offset":"Sales","debit":"lots"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrImport)
		})
	}
}

func TestReadJSON_EmptyArray(t *testing.T) {
	got, err := ReadJSON(strings.NewReader("  []  "))
	require.NoError(t, err)
	assert.Empty(t, got)
}
