package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		symbol string
		places int
		amount string
		want   string
	}{
		{"$", 2, "1234.5", "$1234.50"},
		{"$", 2, "0", "$0.00"},
		{"$", 2, "0.005", "$0.01"},
		{"$", 2, "1.005", "$1.01"},
		{"$", 2, "-100", "-$100.00"},
		{"$", 2, "-0.001", "$0.00"},
		{"$", 0, "1234.5", "$1235"},
		{"$", 3, "2.5", "$2.500"},
		{"€", 2, "10", "€10.00"},
		{"", 2, "10", "10.00"},
		{"CHF ", 2, "99.999", "CHF 100.00"},
		{"$", -1, "7.4", "$7"},
		{"$", 4294967298, "1.239", "$1.239000000000000000"},
	}
	for _, tt := range tests {
		f := NewFormatter(tt.symbol, tt.places)
		got := f.Format(decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.want, got, "Format(%s) with %q/%d", tt.amount, tt.symbol, tt.places)
	}
}

func TestFormat_Huge(t *testing.T) {
	f := NewFormatter("$", 2)
	assert.Equal(t, "$123456789012345678901.00", f.Format(decimal.RequireFromString("123456789012345678901")))
	assert.Equal(t, "-$123456789012345678901.00", f.Format(decimal.RequireFromString("-123456789012345678901")))
}

func TestAccessors(t *testing.T) {
	assert.Equal(t, MaxPlaces, NewFormatter("$", 1<<40).Places())

	f := NewFormatter("£", 4)
	assert.Equal(t, "£", f.Symbol())
	assert.Equal(t, 4, f.Places())
}
