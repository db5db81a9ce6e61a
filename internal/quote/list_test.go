package quote

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDocuments() []preapproval.Document {
	older := *fhaDocument()
	older.ID = uuid.New()
	older.CreatedAt = testNow.Add(-72 * time.Hour)
	older.Status = preapproval.StatusPreApproved

	newer := *fhaDocument()
	newer.ID = uuid.New()
	newer.CreatedAt = testNow
	newer.Status = preapproval.StatusInEscrow
	incomplete := fhaScenario()
	incomplete.ID = uuid.New()
	incomplete.LastSubmittedFormNo = preapproval.FormPurchaseInfo
	incomplete.LoanProgram = nil
	noPurchase := fhaScenario()
	noPurchase.ID = uuid.New()
	noPurchase.PurchaseInfo = nil
	newer.Scenarios = append(newer.Scenarios, incomplete, noPurchase)

	empty := preapproval.Document{ID: uuid.New(), CreatedAt: testNow.Add(-24 * time.Hour), Status: preapproval.StatusPreApproved}

	return []preapproval.Document{older, newer, empty}
}

func TestList(t *testing.T) {
	docs := listDocuments()

	rows := List(docs, 0)
	require.Len(t, rows, 3)

	// Newest first.
	assert.Equal(t, docs[1].ID, rows[0].PreApprovalID)
	assert.Equal(t, docs[2].ID, rows[1].PreApprovalID)
	assert.Equal(t, docs[0].ID, rows[2].PreApprovalID)

	newest := rows[0]
	assert.Equal(t, "Jordan Lee", newest.BorrowerName)
	assert.Equal(t, preapproval.StatusInEscrow, newest.Status)
	require.Len(t, newest.Scenarios, 2, "scenarios without purchase info are skipped")

	full := newest.Scenarios[0]
	assert.True(t, full.IsLoanProgramFilled)
	assert.Equal(t, "FHA", full.LoanProgram)
	assert.True(t, full.LoanAmount.Equal(decimal.NewFromInt(240000)))
	assert.True(t, full.AnnualInterestRate.Equal(d("3.5")))
	assert.True(t, full.MonthlyTotal.Equal(d("1664.07")))

	partial := newest.Scenarios[1]
	assert.False(t, partial.IsLoanProgramFilled)
	assert.True(t, partial.MonthlyTotal.IsZero())

	assert.Equal(t, "", rows[1].BorrowerName)
	assert.NotNil(t, rows[1].Scenarios)
	assert.Empty(t, rows[1].Scenarios)
}

func TestListFiltersByStatus(t *testing.T) {
	docs := listDocuments()

	rows := List(docs, preapproval.StatusPreApproved)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, preapproval.StatusPreApproved, row.Status)
	}

	assert.Empty(t, List(docs, preapproval.StatusClosedEscrow))
	assert.Empty(t, List(nil, 0))
}
