package quote

import (
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/pkg/loans"
	"github.com/shopspring/decimal"
)

// FillDerived completes fields the wizard leaves blank but report math reads.
// A missing LoanProgram.Price is taken from PurchaseInfo.PurchasePrice and a
// missing title fee is priced from the loan amount. Entered values are never
// overwritten.
func FillDerived(doc *preapproval.Document) {
	for i := range doc.Scenarios {
		scenario := &doc.Scenarios[i]
		purchase := scenario.PurchaseInfo
		if purchase == nil {
			continue
		}
		if scenario.LoanProgram != nil && !scenario.LoanProgram.Price.Valid && purchase.PurchasePrice.IsPositive() {
			scenario.LoanProgram.Price = decimal.NewNullDecimal(purchase.PurchasePrice)
		}
		if scenario.LenderFees != nil && !scenario.LenderFees.TitleFees.Valid && purchase.LoanAmount.IsPositive() {
			scenario.LenderFees.TitleFees = decimal.NewNullDecimal(loans.TitleInsurance(purchase.LoanAmount))
		}
	}
}
