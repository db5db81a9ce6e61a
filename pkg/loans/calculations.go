// Package loans provides common loan processing utilities.
package loans

import (
	"errors"
	"math"

	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/iwvelando/loan-portal/pkg/mathutil"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTerm is returned when a loan term is not a positive number of years.
	ErrInvalidTerm = errors.New("loan term must be greater than zero")
	// ErrRateOutOfRange is returned when a rate compounds past float64 range.
	ErrRateOutOfRange = errors.New("interest rate is out of range")
)

var monthsPerYear = decimal.NewFromInt(constants.MonthsPerYear)

// MonthlyPI calculates the monthly principal and interest payment for a loan
// using the standard amortization formula:
//
//	monthlyRate = annualRatePercent / 12 / 100
//	factor      = (1 + monthlyRate)^(termYears*12)
//	payment     = loanAmount * monthlyRate * factor / (factor - 1)
//
// A zero rate spreads the loan amount evenly over the term. The result is not
// rounded; callers round to currency precision when assembling a report.
func MonthlyPI(loanAmount, annualRatePercent decimal.Decimal, termYears int) (decimal.Decimal, error) {
	if termYears <= 0 {
		return decimal.Zero, ErrInvalidTerm
	}

	termMonths := decimal.NewFromInt(int64(termYears) * constants.MonthsPerYear)
	monthlyRate := mathutil.PercentToRate(annualRatePercent).Div(monthsPerYear)

	if monthlyRate.IsZero() {
		return loanAmount.Div(termMonths), nil
	}

	// The power is taken in float64 through log1p/expm1 so rates near zero
	// keep their precision; everything around it stays decimal.
	growth := float64(termYears*constants.MonthsPerYear) * math.Log1p(monthlyRate.InexactFloat64())
	factor := math.Exp(growth)
	if math.IsInf(factor, 0) || math.IsNaN(factor) {
		return decimal.Zero, ErrRateOutOfRange
	}
	denominator := decimal.NewFromFloat(math.Expm1(growth))
	if denominator.IsZero() {
		return loanAmount.Div(termMonths), nil
	}
	return loanAmount.
		Mul(monthlyRate).
		Mul(decimal.NewFromFloat(factor)).
		Div(denominator), nil
}
