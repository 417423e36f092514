// Package money holds the fixed point arithmetic used for order amounts,
// estimate totals and line item prices. Values are stored as numeric(15,2).
package money

import (
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept for every amount.
const Scale int32 = 2

// Amount is the response representation of a decimal: a JSON number that
// always carries Scale fractional digits (15000 -> 15000.00).
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(Scale)), nil
}

// Round normalises an amount to Scale places, halves away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// LineTotal computes quantity x unit price.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// Sum adds amounts; an empty input yields zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round(total)
}

func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}

// MaxAmount is the largest value a numeric(15,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

// Fits reports whether d can be stored without a numeric overflow.
func Fits(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(MaxAmount)
}

// NormalizePositive rounds an input amount to Scale places and reports
// whether the stored value is still greater than zero and fits the column.
// 0.004 rounds to 0.00 and is rejected.
func NormalizePositive(d decimal.Decimal) (decimal.Decimal, bool) {
	rounded := Round(d)
	return rounded, IsPositive(rounded) && Fits(rounded)
}

// MustParse is meant for constants and tests.
func MustParse(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
