// Package mathutil converts between the ledger's integer base units and
// human readable display units with a configurable precision.
package mathutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.DivisionPrecision = 8
}

// ToDisplayUnits scales an amount of base units down by the given decimal
// precision, e.g. 150000 base units with precision 2 are 1500.00 display
// units.
func ToDisplayUnits(amount uint64, precision uint) decimal.Decimal {
	value := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
	return value.Shift(-int32(precision))
}

// FromDisplayUnits scales a display amount up to base units, truncating
// anything below the smallest representable unit.
func FromDisplayUnits(amount decimal.Decimal, precision uint) uint64 {
	scaled := amount.Shift(int32(precision)).Truncate(0)
	return scaled.BigInt().Uint64()
}

// FormatAmount renders an amount of base units as a fixed point string
// with the given precision.
func FormatAmount(amount uint64, precision uint) string {
	return ToDisplayUnits(amount, precision).StringFixed(int32(precision))
}
