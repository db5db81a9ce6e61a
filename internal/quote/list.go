package quote

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Summary is one row of the quote list.
type Summary struct {
	PreApprovalID uuid.UUID                     `json:"preApprovalId"`
	CreatedAt     time.Time                     `json:"createdAt"`
	BorrowerName  string                        `json:"borrowerName"`
	Status        preapproval.ApplicationStatus `json:"status"`
	Scenarios     []ScenarioSummary             `json:"scenarios"`
}

// ScenarioSummary condenses a scenario that has purchase info.
type ScenarioSummary struct {
	ScenarioID          uuid.UUID       `json:"scenarioId"`
	ScenarioName        string          `json:"scenarioName,omitempty"`
	LoanAmount          decimal.Decimal `json:"loanAmount"`
	AnnualInterestRate  decimal.Decimal `json:"annualInterestRate"`
	LoanProgram         string          `json:"loanProgram"`
	MonthlyTotal        decimal.Decimal `json:"monthlyTotal"`
	IsLoanProgramFilled bool            `json:"isLoanProgramFilled"`
}

// List projects documents into quote list rows, newest first. A zero status
// keeps every document, otherwise only documents in that status are listed.
func List(docs []preapproval.Document, status preapproval.ApplicationStatus) []Summary {
	rows := make([]Summary, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		if status != 0 && doc.Status != status {
			continue
		}

		row := Summary{
			PreApprovalID: doc.ID,
			CreatedAt:     doc.CreatedAt,
			BorrowerName:  doc.BorrowerName(),
			Status:        doc.Status,
			Scenarios:     []ScenarioSummary{},
		}
		for _, scenario := range doc.Scenarios {
			if scenario.PurchaseInfo == nil {
				continue
			}
			summary := ScenarioSummary{
				ScenarioID:          scenario.ID,
				ScenarioName:        scenario.Name,
				LoanAmount:          scenario.PurchaseInfo.LoanAmount,
				AnnualInterestRate:  scenario.PurchaseInfo.AnnualInterestRate,
				LoanProgram:         scenario.PurchaseInfo.LoanProgram.String(),
				MonthlyTotal:        decimal.Zero,
				IsLoanProgramFilled: scenario.LastSubmittedFormNo == preapproval.FormLoanProgram,
			}
			if scenario.LoanProgram != nil {
				summary.MonthlyTotal = mathutil.OrZero(scenario.LoanProgram.MonthlyTotal)
			}
			row.Scenarios = append(row.Scenarios, summary)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows
}
