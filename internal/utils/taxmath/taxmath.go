// Package taxmath holds the pure tax arithmetic. No I/O, no side effects:
// the same inputs always produce the same output, which is what lets both
// document posting and return preparation share it.
package taxmath

import (
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places of the currency minor unit.
const MinorUnitPlaces = 2

var oneHundred = decimal.NewFromInt(100)

// LineTax computes the tax amount for a base amount and a percentage rate
// (e.g. rate 9 means 9%). The result is rounded half-up to the currency
// minor unit; this is the single rounding point for tax amounts in the
// whole system.
func LineTax(base decimal.Decimal, ratePercent decimal.Decimal) decimal.Decimal {
	return RoundMinorUnit(base.Mul(ratePercent).Div(oneHundred))
}

// RoundMinorUnit rounds half-up to MinorUnitPlaces decimal places.
func RoundMinorUnit(amount decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which equals half-up for the
	// non-negative amounts tax computation deals in.
	return amount.Round(MinorUnitPlaces)
}

// GrossFromNet returns net + tax for a base amount and percentage rate.
func GrossFromNet(net decimal.Decimal, ratePercent decimal.Decimal) decimal.Decimal {
	return net.Add(LineTax(net, ratePercent))
}
