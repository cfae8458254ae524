// Package money rounds and formats USD amounts. Aggregates are computed as
// float64 in SQL and pass through decimal here so the rounding is exact for
// the values we print.
package money

import "github.com/shopspring/decimal"

// Currency is the only currency reported by the API.
const Currency = "USD"

// Round2 rounds half away from zero to cents.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// Percent returns part/total*100 rounded to one decimal, or 0 when total is 0.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	p := decimal.NewFromFloat(part).
		Div(decimal.NewFromFloat(total)).
		Mul(decimal.NewFromInt(100))
	return p.Round(1).InexactFloat64()
}

// Sum adds values exactly and rounds the result to cents.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}

// Format renders v with exactly two decimals, e.g. 3 -> "3.00".
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
