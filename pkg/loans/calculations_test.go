package loans

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMonthlyPI(t *testing.T) {
	tests := []struct {
		name       string
		loanAmount string
		rate       string
		termYears  int
		expected   string // rounded to cents
	}{
		{
			name:       "FHA financed principal",
			loanAmount: "294566.25",
			rate:       "3.5",
			termYears:  30,
			expected:   "1322.73",
		},
		{
			name:       "Conventional 20 percent down",
			loanAmount: "240000",
			rate:       "3.5",
			termYears:  30,
			expected:   "1077.71",
		},
		{
			name:       "Principal with upfront MIP added",
			loanAmount: "244200",
			rate:       "3.5",
			termYears:  30,
			expected:   "1096.57",
		},
		{
			name:       "Standard 30-year mortgage at 6 percent",
			loanAmount: "240000",
			rate:       "6",
			termYears:  30,
			expected:   "1438.92",
		},
		{
			name:       "15-year term",
			loanAmount: "200000",
			rate:       "4.5",
			termYears:  15,
			expected:   "1529.99",
		},
		{
			name:       "Zero loan amount",
			loanAmount: "0",
			rate:       "5",
			termYears:  30,
			expected:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MonthlyPI(decimal.RequireFromString(tt.loanAmount), decimal.RequireFromString(tt.rate), tt.termYears)
			if err != nil {
				t.Fatalf("MonthlyPI() error = %v", err)
			}
			if !result.Round(2).Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("MonthlyPI(%s, %s, %d) = %s, expected %s",
					tt.loanAmount, tt.rate, tt.termYears, result.Round(2), tt.expected)
			}
		})
	}
}

func TestMonthlyPIZeroRate(t *testing.T) {
	tests := []struct {
		name       string
		loanAmount string
		termYears  int
	}{
		{"Thirty years", "240000", 30},
		{"Uneven split", "100000", 30},
		{"One year", "12000", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanAmount := decimal.RequireFromString(tt.loanAmount)
			result, err := MonthlyPI(loanAmount, decimal.Zero, tt.termYears)
			if err != nil {
				t.Fatalf("MonthlyPI() error = %v", err)
			}
			expected := loanAmount.Div(decimal.NewFromInt(int64(tt.termYears * 12)))
			if !result.Equal(expected) {
				t.Errorf("MonthlyPI(%s, 0, %d) = %s, expected exactly %s", tt.loanAmount, tt.termYears, result, expected)
			}
		})
	}
}

func TestMonthlyPINearZeroRate(t *testing.T) {
	tests := []struct {
		name string
		rate string
	}{
		{"Tiny positive rate", "0.00000000000012"},
		{"Tiny negative rate", "-0.00000000000012"},
		{"Rate below decimal precision", "0.0000000000000001"},
	}

	loanAmount := decimal.NewFromInt(240000)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MonthlyPI(loanAmount, decimal.RequireFromString(tt.rate), 30)
			if err != nil {
				t.Fatalf("MonthlyPI() error = %v", err)
			}
			if !result.Round(2).Equal(decimal.RequireFromString("666.67")) {
				t.Errorf("MonthlyPI(240000, %s, 30) = %s, expected 666.67", tt.rate, result.Round(2))
			}
		})
	}
}

func TestMonthlyPIRateOutOfRange(t *testing.T) {
	_, err := MonthlyPI(decimal.NewFromInt(240000), decimal.NewFromInt(1000000), 30)
	if !errors.Is(err, ErrRateOutOfRange) {
		t.Errorf("MonthlyPI() error = %v, expected ErrRateOutOfRange", err)
	}
}

func TestMonthlyPIInvalidTerm(t *testing.T) {
	for _, term := range []int{0, -30} {
		_, err := MonthlyPI(decimal.NewFromInt(240000), decimal.RequireFromString("3.5"), term)
		if !errors.Is(err, ErrInvalidTerm) {
			t.Errorf("MonthlyPI() with term %d error = %v, expected ErrInvalidTerm", term, err)
		}
	}
}

func TestMonthlyPIIsNotRoundedMidCalculation(t *testing.T) {
	result, err := MonthlyPI(decimal.RequireFromString("294566.25"), decimal.RequireFromString("3.5"), 30)
	if err != nil {
		t.Fatalf("MonthlyPI() error = %v", err)
	}
	if result.Equal(result.Round(2)) {
		t.Errorf("MonthlyPI() = %s, expected full precision rather than cents", result)
	}
}
