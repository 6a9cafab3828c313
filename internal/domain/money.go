package domain

import "github.com/shopspring/decimal"

// PriceFromCents converts a cent amount to a decimal major-unit amount.
func PriceFromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// ApplyDiscountCents returns totalCents reduced by percent, rounded to the
// nearest cent.
func ApplyDiscountCents(totalCents int64, percent int) int64 {
	if percent <= 0 {
		return totalCents
	}
	if percent >= 100 {
		return 0
	}
	total := decimal.NewFromInt(totalCents)
	factor := decimal.NewFromInt(int64(100 - percent)).Div(decimal.NewFromInt(100))
	return total.Mul(factor).Round(0).IntPart()
}
