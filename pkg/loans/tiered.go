package loans

import (
	"sort"

	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/shopspring/decimal"
)

var perMille = decimal.NewFromInt(constants.PerMille)

// Tier is one band of a tiered fee schedule: the portion of an amount above
// Floor (and below the next higher tier's floor) is charged RatePerMille per
// 1,000.
type Tier struct {
	Floor        decimal.Decimal
	RatePerMille decimal.Decimal
}

// TieredSchedule evaluates banded per-mille fees such as title insurance.
type TieredSchedule struct {
	tiers []Tier
}

// NewTieredSchedule builds a schedule from tiers given in any order.
func NewTieredSchedule(tiers ...Tier) TieredSchedule {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Floor.GreaterThan(sorted[j].Floor)
	})
	return TieredSchedule{tiers: sorted}
}

// Tiers returns the tiers ordered from the highest floor to the lowest.
func (s TieredSchedule) Tiers() []Tier {
	out := make([]Tier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

// Evaluate applies the bands highest tier first, each consuming the portion of
// amount that lies in it. Amounts at or below zero cost nothing. The result is
// not rounded.
func (s TieredSchedule) Evaluate(amount decimal.Decimal) decimal.Decimal {
	premium := decimal.Zero
	remaining := amount
	for _, tier := range s.tiers {
		if remaining.LessThanOrEqual(tier.Floor) {
			continue
		}
		premium = premium.Add(remaining.Sub(tier.Floor).Mul(tier.RatePerMille).Div(perMille))
		remaining = tier.Floor
	}
	return premium
}

// TitleInsuranceSchedule is the title-insurance premium schedule:
// 4.00 per 1,000 above 500,000, 5.00 per 1,000 between 100,000 and 500,000 and
// 5.75 per 1,000 up to 100,000.
var TitleInsuranceSchedule = NewTieredSchedule(
	Tier{Floor: decimal.NewFromInt(500000), RatePerMille: decimal.RequireFromString("4.00")},
	Tier{Floor: decimal.NewFromInt(100000), RatePerMille: decimal.RequireFromString("5.00")},
	Tier{Floor: decimal.Zero, RatePerMille: decimal.RequireFromString("5.75")},
)

// TitleInsurance returns the title-insurance premium for a loan amount rounded
// to cents, midpoints away from zero.
func TitleInsurance(loanAmount decimal.Decimal) decimal.Decimal {
	return TitleInsuranceSchedule.Evaluate(loanAmount).Round(constants.CurrencyPlaces)
}
