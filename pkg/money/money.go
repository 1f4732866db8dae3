// Package money converts between the decimal amounts exchanged on the wire
// and the integer minor units (cents) used everywhere internally. Totals are
// summed in int64 cents so line items never accumulate float rounding error.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ToMinorUnits converts a decimal amount to cents. Amounts with sub-cent
// precision are rejected rather than rounded.
func ToMinorUnits(d decimal.Decimal) (int64, error) {
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %s has sub-cent precision", d)
	}
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s out of range", d)
	}
	return shifted.IntPart(), nil
}

// FromMinorUnits converts cents back to a decimal amount.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format renders cents as a fixed two-decimal string, e.g. 1150 -> "11.50".
func Format(cents int64) string {
	return FromMinorUnits(cents).StringFixed(2)
}
