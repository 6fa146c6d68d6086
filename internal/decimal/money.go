package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// CurrencySymbol prefixes every formatted amount
const CurrencySymbol = "¥"

// ParseAmount parses an amount as upstream services write it.
// Surrounding spaces, a leading currency symbol and thousands separators are tolerated.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, CurrencySymbol)
	s = strings.TrimPrefix(s, "￥")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, false
	}
	return d, true
}

// Add sums two amounts, rounds to 2 places
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Round(2)
}

// InclusiveTotal is the only place the tax-inclusive amount is derived.
// A supplied total wins; otherwise the total is excl + tax rounded to 2 places.
// The result is unknown whenever an operand it needs is unknown.
func InclusiveTotal(supplied, excl, tax *decimal.Decimal) (decimal.Decimal, bool) {
	if supplied != nil {
		return supplied.Round(2), true
	}
	if excl == nil || tax == nil {
		return Zero, false
	}
	return Add(*excl, *tax), true
}

// Fixed2 renders an amount with exactly 2 decimal places
func Fixed2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatMoney renders an amount with the currency symbol
func FormatMoney(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}

// Mismatch reports whether a supplied total disagrees with excl + tax by more than one cent.
func Mismatch(supplied, excl, tax decimal.Decimal) bool {
	diff := supplied.Sub(excl.Add(tax)).Abs()
	return diff.GreaterThan(decimal.New(1, -2))
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
