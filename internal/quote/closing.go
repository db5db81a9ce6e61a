package quote

import (
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// EstimatedClosingCost is the settlement breakdown shared by the FHA report
// and the quick quote.
type EstimatedClosingCost struct {
	DiscountFeePercent        decimal.Decimal     `json:"discountFeePercent" yaml:"discountFeePercent"`
	DiscountFee               decimal.Decimal     `json:"discountFee" yaml:"discountFee"`
	OriginationFeePercent     decimal.Decimal     `json:"originationFeePercent" yaml:"originationFeePercent"`
	OriginationFee            decimal.Decimal     `json:"originationFee" yaml:"originationFee"`
	PrepaidInterestDays       int                 `json:"prepaidInterestDays" yaml:"prepaidInterestDays"`
	PrepaidInterest           decimal.Decimal     `json:"prepaidInterest" yaml:"prepaidInterest"`
	HazInsPremium             decimal.Decimal     `json:"hazInsPremium" yaml:"hazInsPremium"`
	HazInsReserveMonths       int                 `json:"hazInsReserveMonths" yaml:"hazInsReserveMonths"`
	HazInsReserve             decimal.Decimal     `json:"hazInsReserve" yaml:"hazInsReserve"`
	PpdPropTaxesMonths        int                 `json:"ppdPropTaxesMonths" yaml:"ppdPropTaxesMonths"`
	PpdPropTaxes              decimal.Decimal     `json:"ppdPropTaxes" yaml:"ppdPropTaxes"`
	EscrowFees                decimal.Decimal     `json:"escrowFees" yaml:"escrowFees"`
	TitleInsurance            decimal.Decimal     `json:"titleInsurance" yaml:"titleInsurance"`
	ThirdPartyLenderFee       decimal.Decimal     `json:"thirdPartyLenderFee" yaml:"thirdPartyLenderFee"`
	AppraisalFee              decimal.Decimal     `json:"appraisalFee" yaml:"appraisalFee"`
	TotalEstSettlementCharges decimal.Decimal     `json:"totalEstSettlementCharges" yaml:"totalEstSettlementCharges"`
	DownPayment               decimal.Decimal     `json:"downPayment" yaml:"downPayment"`
	TotalEstFundsToClose      decimal.Decimal     `json:"totalEstFundsToClose" yaml:"totalEstFundsToClose"`
	EarnestMoneyDeposit       decimal.NullDecimal `json:"earnestMoneyDeposit" yaml:"earnestMoneyDeposit"`
	SellerCredit              decimal.NullDecimal `json:"sellerCredit" yaml:"sellerCredit"`
	LenderCredit              decimal.NullDecimal `json:"lenderCredit" yaml:"lenderCredit"`
	MiscFee4                  decimal.NullDecimal `json:"miscFee4" yaml:"miscFee4"`
}

// EstimateClosingCost sums a scenario's settlement charges and works out the
// funds needed to close given the down payment amount. Misc fees are credits
// and reduce the funds to close; an absent credit counts as zero.
//
// The result is not rounded.
func EstimateClosingCost(scenario *preapproval.Scenario, downPaymentAmount decimal.Decimal) (EstimatedClosingCost, error) {
	switch {
	case scenario.LenderFees == nil:
		return EstimatedClosingCost{}, missing("LenderFees")
	case scenario.PrepaidItems == nil:
		return EstimatedClosingCost{}, missing("PrepaidItems")
	case scenario.PurchaseInfo == nil:
		return EstimatedClosingCost{}, missing("PurchaseInfo")
	case scenario.MiscFees == nil:
		return EstimatedClosingCost{}, missing("MiscFees")
	}

	fees := scenario.LenderFees
	prepaid := scenario.PrepaidItems
	misc := scenario.MiscFees

	if !fees.TitleFees.Valid {
		return EstimatedClosingCost{}, missing("LenderFees.TitleFees")
	}
	if !fees.ThirdPartyLenderFee.Valid {
		return EstimatedClosingCost{}, missing("LenderFees.ThirdPartyLenderFee")
	}

	cost := EstimatedClosingCost{
		DiscountFeePercent:    fees.DiscountFeePercentage,
		DiscountFee:           fees.DiscountFee,
		OriginationFeePercent: fees.LoanOriginationFeePercentage,
		OriginationFee:        fees.LoanOriginationFee,
		AppraisalFee:          fees.AppraisalFee,
		PrepaidInterestDays:   prepaid.PrepaidInterestDays,
		PrepaidInterest:       prepaid.PrepaidInterestAmount,
		HazInsPremium:         prepaid.HazardInsurance,
		HazInsReserveMonths:   prepaid.HazardInsuranceMonths,
		HazInsReserve:         prepaid.HazardInsuranceReserves,
		PpdPropTaxesMonths:    prepaid.PropertyTaxMonths,
		PpdPropTaxes:          prepaid.PropertyTaxAmount,
		EscrowFees:            fees.EscrowFees,
		TitleInsurance:        fees.TitleFees.Decimal,
		ThirdPartyLenderFee:   fees.ThirdPartyLenderFee.Decimal,
		EarnestMoneyDeposit:   misc.EarnestMoneyDeposit,
		SellerCredit:          misc.SellerCredit,
		LenderCredit:          misc.LenderCredit,
		MiscFee4:              misc.MiscFee4,
		DownPayment:           downPaymentAmount,
	}

	cost.TotalEstSettlementCharges = mathutil.Sum(
		cost.DiscountFee,
		cost.OriginationFee,
		cost.AppraisalFee,
		cost.PrepaidInterest,
		cost.HazInsPremium,
		cost.HazInsReserve,
		cost.PpdPropTaxes,
		cost.EscrowFees,
		cost.TitleInsurance,
		cost.ThirdPartyLenderFee,
	)

	credits := mathutil.Sum(
		mathutil.OrZero(cost.MiscFee4),
		mathutil.OrZero(cost.EarnestMoneyDeposit),
		mathutil.OrZero(cost.SellerCredit),
		mathutil.OrZero(cost.LenderCredit),
	)

	cost.TotalEstFundsToClose = cost.TotalEstSettlementCharges.Add(downPaymentAmount).Sub(credits)
	return cost, nil
}

// Rounded returns a copy with every amount rounded to cents. Percentages are
// left as entered.
func (c EstimatedClosingCost) Rounded() EstimatedClosingCost {
	out := c
	for _, amount := range []*decimal.Decimal{
		&out.DiscountFee, &out.OriginationFee, &out.PrepaidInterest, &out.HazInsPremium,
		&out.HazInsReserve, &out.PpdPropTaxes, &out.EscrowFees, &out.TitleInsurance,
		&out.ThirdPartyLenderFee, &out.AppraisalFee, &out.TotalEstSettlementCharges,
		&out.DownPayment, &out.TotalEstFundsToClose,
	} {
		*amount = mathutil.RoundCurrency(*amount)
	}
	for _, credit := range []*decimal.NullDecimal{
		&out.EarnestMoneyDeposit, &out.SellerCredit, &out.LenderCredit, &out.MiscFee4,
	} {
		if credit.Valid {
			credit.Decimal = mathutil.RoundCurrency(credit.Decimal)
		}
	}
	return out
}
