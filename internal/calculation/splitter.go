package calculation

import "github.com/shopspring/decimal"

// SplitIncome splits a household wage total between two earners:
// the first receives total*ratio, the second total*(1-ratio).
//
// ratio is expected in [0, 1] but is not validated; out-of-range values pass
// through arithmetically and yield a negative or over-weighted share.
func SplitIncome(total, ratio decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	first := total.Mul(ratio)
	second := total.Mul(decimal.NewFromInt(1).Sub(ratio))
	return first, second
}
