package testutil

import (
	"testing"

	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFHAScenario(t *testing.T) {
	scenario := FHAScenario()
	assert.Equal(t, FHAScenarioID, scenario.ID)
	require.NotNil(t, scenario.BorrowerInfo)
	assert.Empty(t, scenario.BorrowerInfo.Validate())
	assert.Equal(t, preapproval.ProgramFHA, scenario.LoanProgram.Program)
	assert.True(t, scenario.LoanProgram.Price.Valid)
	assert.True(t, scenario.LenderFees.TitleFees.Decimal.Equal(D("1275")))
}

func TestFHAScenarioReturnsFreshCopies(t *testing.T) {
	first := FHAScenario()
	first.PurchaseInfo.LoanAmount = D("1")
	first.BorrowerIncomes[0].BorrowerName = "changed"

	second := FHAScenario()
	assert.True(t, second.PurchaseInfo.LoanAmount.Equal(D("240000")))
	assert.Equal(t, "Jordan Lee", second.BorrowerIncomes[0].BorrowerName)
}

func TestUnpricedFHAScenario(t *testing.T) {
	scenario := UnpricedFHAScenario()
	assert.False(t, scenario.LoanProgram.Price.Valid)
	assert.False(t, scenario.LenderFees.TitleFees.Valid)
	assert.True(t, scenario.PurchaseInfo.PurchasePrice.Equal(D("300000")))
}

func TestNullDecimalHelper(t *testing.T) {
	value := ND("12.50")
	assert.True(t, value.Valid)
	assert.True(t, value.Decimal.Equal(D("12.5")))
	assert.Panics(t, func() { D("twelve") })
}
