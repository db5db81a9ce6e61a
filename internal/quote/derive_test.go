package quote

import (
	"testing"

	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFillDerived(t *testing.T) {
	doc := fhaDocument()
	scenario := &doc.Scenarios[0]
	scenario.LoanProgram.Price = decimal.NullDecimal{}
	scenario.LenderFees.TitleFees = decimal.NullDecimal{}

	FillDerived(doc)

	assert.True(t, scenario.LoanProgram.Price.Valid)
	assert.True(t, scenario.LoanProgram.Price.Decimal.Equal(d("300000")))
	assert.True(t, scenario.LenderFees.TitleFees.Valid)
	assert.True(t, scenario.LenderFees.TitleFees.Decimal.Equal(d("1275")), "title fees = %s", scenario.LenderFees.TitleFees.Decimal)
}

func TestFillDerivedKeepsEnteredValues(t *testing.T) {
	doc := fhaDocument()
	scenario := &doc.Scenarios[0]
	scenario.LoanProgram.Price = nd("295000")
	scenario.LenderFees.TitleFees = nd("0")

	FillDerived(doc)

	assert.True(t, scenario.LoanProgram.Price.Decimal.Equal(d("295000")))
	assert.True(t, scenario.LenderFees.TitleFees.Decimal.IsZero())
}

func TestFillDerivedSkipsIncompleteScenarios(t *testing.T) {
	doc := &preapproval.Document{Scenarios: []preapproval.Scenario{
		{LoanProgram: &preapproval.LoanProgram{}},
		{PurchaseInfo: &preapproval.PurchaseInfo{}, LoanProgram: &preapproval.LoanProgram{}, LenderFees: &preapproval.LenderFees{}},
	}}

	FillDerived(doc)

	assert.False(t, doc.Scenarios[0].LoanProgram.Price.Valid)
	assert.False(t, doc.Scenarios[1].LoanProgram.Price.Valid)
	assert.False(t, doc.Scenarios[1].LenderFees.TitleFees.Valid)
}
