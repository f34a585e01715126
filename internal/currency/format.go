// Package currency renders monetary amounts for display.
package currency

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// MaxPlaces is the largest number of decimals a Formatter renders.
const MaxPlaces = 18

// Formatter renders amounts as a currency symbol followed by a fixed number
// of decimals, e.g. "$1234.50". Negative amounts get a leading minus.
type Formatter struct {
	symbol string
	places int32
	f      *money.Formatter
}

// NewFormatter returns a Formatter for symbol and decimal places. Places are
// clamped to 0..MaxPlaces.
func NewFormatter(symbol string, places int) Formatter {
	places = min(max(places, 0), MaxPlaces)
	return Formatter{
		symbol: symbol,
		places: int32(places),
		f:      money.NewFormatter(places, ".", "", symbol, "$1"),
	}
}

// Format renders amount, rounding half away from zero.
func (f Formatter) Format(amount decimal.Decimal) string {
	minor := amount.Shift(f.places).Round(0)
	if minor.Abs().GreaterThan(maxMinor) {
		// Beyond int64 minor units; go-money cannot represent it.
		rounded := amount.Round(f.places)
		if rounded.IsNegative() {
			return "-" + f.symbol + rounded.Abs().StringFixed(f.places)
		}
		return f.symbol + rounded.StringFixed(f.places)
	}
	return f.f.Format(minor.IntPart())
}

// Symbol returns the configured currency symbol.
func (f Formatter) Symbol() string {
	return f.symbol
}

// Places returns the configured number of decimals.
func (f Formatter) Places() int {
	return int(f.places)
}
