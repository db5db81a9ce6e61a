// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/shopspring/decimal"
)

var (
	percentageMultiplier = decimal.NewFromInt(constants.PercentageMultiplier)
	monthsPerYear        = decimal.NewFromInt(constants.MonthsPerYear)
)

// RoundCurrency rounds a value to two decimals, i.e. to represent real
// currency. Midpoints round away from zero (1.005 -> 1.01, -1.005 -> -1.01).
func RoundCurrency(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.CurrencyPlaces)
}

// ApplyPercentage applies a percentage to a value, e.g. (300000, 20) -> 60000.
func ApplyPercentage(value, percentage decimal.Decimal) decimal.Decimal {
	return value.Mul(percentage).Div(percentageMultiplier)
}

// PercentToRate converts a stored percentage into a fraction, e.g. 3.5 -> 0.035.
func PercentToRate(percentage decimal.Decimal) decimal.Decimal {
	return percentage.Div(percentageMultiplier)
}

// Monthly spreads an annual amount over twelve months.
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(monthsPerYear)
}

// Sum adds all values; an empty list sums to zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// OrZero returns the value of an optional decimal or zero when it is absent.
func OrZero(val decimal.NullDecimal) decimal.Decimal {
	if !val.Valid {
		return decimal.Zero
	}
	return val.Decimal
}
