// Package money converts between the integer cent amounts stored in the
// database and the decimal string amounts exposed on the API.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CentsFromDecimal converts a decimal currency amount to integer cents.
// Amounts with sub-cent precision are rejected rather than rounded.
func CentsFromDecimal(amount decimal.Decimal) (int, error) {
	cents := amount.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("money: amount %s has sub-cent precision", amount)
	}
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("money: amount %s out of range", amount)
	}
	return int(cents.IntPart()), nil
}

// DecimalFromCents renders integer cents as a two-place decimal amount.
func DecimalFromCents(cents int) decimal.Decimal {
	return decimal.NewFromInt(int64(cents)).Div(hundred)
}

// FormatCents renders cents as a fixed two-decimal string, e.g. 850 -> "8.50".
func FormatCents(cents int) string {
	return DecimalFromCents(cents).StringFixed(2)
}
