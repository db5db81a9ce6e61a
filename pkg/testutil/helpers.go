// Package testutil provides shared fixtures for tests across the loan portal.
package testutil

import (
	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/shopspring/decimal"
)

// FHAScenarioID is the id of the scenario returned by FHAScenario.
var FHAScenarioID = uuid.MustParse("0d5f7d9c-2f43-4a0e-8c36-2b0f1f6b9a20")

// D parses a decimal literal and panics if it is malformed.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ND parses a decimal literal into a valid NullDecimal.
func ND(s string) decimal.NullDecimal { return decimal.NewNullDecimal(D(s)) }

// FHAScenario returns a fully filled FHA scenario: price 300,000 with 20% down
// at 3.5% over 30 years. Every call returns fresh sub-forms.
func FHAScenario() preapproval.Scenario {
	return preapproval.Scenario{
		ID:                  FHAScenarioID,
		Order:               1,
		Name:                "FHA 20 down",
		LastSubmittedFormNo: preapproval.FormLoanProgram,
		BorrowerInfo:        &preapproval.BorrowerInfo{BorrowerName: "Jordan Lee"},
		PurchaseInfo: &preapproval.PurchaseInfo{
			PurchasePrice:      D("300000"),
			DownPayment:        D("20"),
			LoanAmount:         D("240000"),
			AnnualInterestRate: D("3.5"),
			MipFundingFee:      D("1.75"),
			HazardInsurance:    ND("95"),
			AssociationFee:     ND("50"),
			MiPercent:          ND("110"),
			LoanProgram:        preapproval.ProgramFHA,
			PropertyType:       preapproval.PropertySFR,
			OccupancyStatus:    preapproval.OccupancyOwnerOccupied,
		},
		LenderFees: &preapproval.LenderFees{
			AgentName:                    "Avery Stone",
			LoanOriginationFee:           D("2400"),
			LoanOriginationFeePercentage: D("1"),
			DiscountFee:                  D("1200"),
			DiscountFeePercentage:        D("0.5"),
			AppraisalFee:                 D("550"),
			EscrowFees:                   D("1800"),
			TitleFees:                    ND("1275"),
			ThirdPartyLenderFee:          ND("895"),
		},
		PrepaidItems: &preapproval.PrepaidItems{
			PrepaidInterestDays:     15,
			PrepaidInterestAmount:   D("450"),
			HazardInsurance:         D("1140"),
			HazardInsuranceMonths:   2,
			HazardInsuranceReserves: D("190"),
			PropertyTaxMonths:       3,
			PropertyTaxAmount:       D("937.5"),
		},
		MiscFees: &preapproval.MiscFees{
			EarnestMoneyDeposit: ND("5000"),
			SellerCredit:        ND("3000"),
			LenderCredit:        ND("500"),
			MiscFee4:            ND("250"),
		},
		BorrowerIncomes: []preapproval.BorrowerIncome{
			{BorrowerName: "Jordan Lee", MonthlyIncome: ND("9000")},
			{BorrowerName: "Sam Lee", MonthlyIncome: ND("4000")},
		},
		LoanProgram: &preapproval.LoanProgram{
			Program:            preapproval.ProgramFHA,
			Price:              ND("300000"),
			InterestRate:       D("3.5"),
			BaseLoanAmount:     D("240000"),
			UPMIPRate:          ND("1.75"),
			MMI:                ND("0.55"),
			Term:               30,
			MonthlyPropertyTax: ND("312.50"),
			MonthlyTotal:       ND("1664.07"),
		},
	}
}

// UnpricedFHAScenario is FHAScenario as the wizard submits it, before the
// program price and title fees are derived on save.
func UnpricedFHAScenario() preapproval.Scenario {
	scenario := FHAScenario()
	scenario.LoanProgram.Price = decimal.NullDecimal{}
	scenario.LenderFees.TitleFees = decimal.NullDecimal{}
	return scenario
}
