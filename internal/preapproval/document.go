// Package preapproval holds the pre-approval application model: a document
// owned by one user with an ordered list of what-if scenarios, each made of the
// optional wizard sub-forms the quote engine reads.
package preapproval

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document is the aggregate root persisted by the document store. Saves replace
// the whole document.
type Document struct {
	ID                      uuid.UUID         `json:"id"`
	UserID                  uuid.UUID         `json:"userId"`
	CreatedAt               time.Time         `json:"createdAt"`
	UpdatedAt               time.Time         `json:"updatedAt"`
	LastSubmittedFormNo     int               `json:"lastSubmittedFormNo"`
	LastSubmittedScenarioNo int               `json:"lastSubmittedScenarioNo"`
	Status                  ApplicationStatus `json:"status"`
	StatusUpdatedAt         *time.Time        `json:"statusUpdatedAt,omitempty"`
	Scenarios               []Scenario        `json:"scenarios"`
}

// Scenario is one what-if loan configuration. Every sub-form is optional; nil
// means the wizard step has not been submitted.
type Scenario struct {
	ID                  uuid.UUID        `json:"id"`
	Order               int              `json:"scenarioOrder"`
	Name                string           `json:"scenarioName,omitempty"`
	CreatedAt           *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt           *time.Time       `json:"updatedAt,omitempty"`
	LastSubmittedFormNo FormType         `json:"lastSubmittedFormNo"`
	BorrowerInfo        *BorrowerInfo    `json:"borrowerInfo,omitempty"`
	PurchaseInfo        *PurchaseInfo    `json:"purchaseInfo,omitempty"`
	LenderFees          *LenderFees      `json:"lenderFees,omitempty"`
	PrepaidItems        *PrepaidItems    `json:"prepaidItems,omitempty"`
	MiscFees            *MiscFees        `json:"miscFees,omitempty"`
	BorrowerIncomes     []BorrowerIncome `json:"borrowerIncomes,omitempty"`
	LoanProgram         *LoanProgram     `json:"loanProgram,omitempty"`
}

// BorrowerInfo is the first wizard step.
type BorrowerInfo struct {
	BorrowerName         string `json:"borrowerName"`
	CoBorrowerName       string `json:"coBorrowerName,omitempty"`
	FicoScore            *int   `json:"ficoScore,omitempty"`
	CoBorrowerFicoScore  *int   `json:"coBorrowerFicoScore,omitempty"`
	BorrowerCellNumber   string `json:"borrowerCellNumber,omitempty"`
	CoBorrowerCellNumber string `json:"coBorrowerCellNumber,omitempty"`
	BorrowerEmail        string `json:"borrowerEmail,omitempty"`
}

// PurchaseInfo describes the purchase. DownPayment is a percentage of the price.
type PurchaseInfo struct {
	PurchasePrice      decimal.Decimal     `json:"purchasePrice"`
	DownPayment        decimal.Decimal     `json:"downPayment"`
	LoanAmount         decimal.Decimal     `json:"loanAmount"`
	AnnualInterestRate decimal.Decimal     `json:"annualInterestRate"`
	MipFundingFee      decimal.Decimal     `json:"mipFundingFee"`
	HazardInsurance    decimal.NullDecimal `json:"hazardInsurance"`
	AssociationFee     decimal.NullDecimal `json:"associationFee"`
	MiPercent          decimal.NullDecimal `json:"miPercent"`
	LoanProgram        Program             `json:"loanProgram"`
	PropertyType       PropertyType        `json:"propertyType"`
	OccupancyStatus    OccupancyStatus     `json:"occupancyStatus"`
}

// LenderFees are the lender and third-party charges for a scenario.
type LenderFees struct {
	AgentName                    string              `json:"agentName,omitempty"`
	LoanOriginationFee           decimal.Decimal     `json:"loanOriginationFee"`
	LoanOriginationFeePercentage decimal.Decimal     `json:"loanOriginationFeePercentage"`
	DiscountFee                  decimal.Decimal     `json:"discountFee"`
	DiscountFeePercentage        decimal.Decimal     `json:"discountFeePercentage"`
	UpfrontMip                   decimal.Decimal     `json:"upfrontMip"`
	UpfrontMipPercentage         decimal.Decimal     `json:"upfrontMipPercentage"`
	AppraisalFee                 decimal.Decimal     `json:"appraisalFee"`
	EscrowFees                   decimal.Decimal     `json:"escrowFees"`
	TitleFees                    decimal.NullDecimal `json:"titleFees"`
	ThirdPartyLenderFee          decimal.NullDecimal `json:"thirdPartyLenderFee"`
	NotaryFee                    decimal.Decimal     `json:"notaryFee"`
	Underwriter                  decimal.Decimal     `json:"underWriter"`
	ProcessFee                   decimal.Decimal     `json:"processFee"`
	NonRecurringCost             decimal.NullDecimal `json:"nonRecurringCost"`
}

// PrepaidItems are the amounts collected up front at closing.
type PrepaidItems struct {
	PrepaidInterestDays     int             `json:"prepaidInterestDays"`
	PrepaidInterestAmount   decimal.Decimal `json:"prepaidInterestAmount"`
	HazardInsurance         decimal.Decimal `json:"hazardInsurance"`
	HazardInsuranceMonths   int             `json:"hazardInsuranceMonths"`
	HazardInsuranceReserves decimal.Decimal `json:"hazardInsuranceReserves"`
	PropertyTaxMonths       int             `json:"propertyTaxMonths"`
	PropertyTaxAmount       decimal.Decimal `json:"propertyTaxAmount"`
	PrePayCost              decimal.Decimal `json:"prePayCost"`
}

// MiscFees are credits against the funds the borrower needs to close.
type MiscFees struct {
	EarnestMoneyDeposit decimal.NullDecimal `json:"earnestMoneyDeposit"`
	SellerCredit        decimal.NullDecimal `json:"sellerCredit"`
	LenderCredit        decimal.NullDecimal `json:"lenderCredit"`
	MiscFee4            decimal.NullDecimal `json:"miscFee4"`
}

// BorrowerIncome is one borrower's income and debt summary.
type BorrowerIncome struct {
	BorrowerName  string              `json:"borrowerName"`
	FicoScore     *int                `json:"ficoScore,omitempty"`
	MonthlyIncome decimal.NullDecimal `json:"monthlyIncome"`
	Debts         []Debt              `json:"debts,omitempty"`
}

// Debt is a recurring obligation counted against a borrower's income.
type Debt struct {
	DebtType       int             `json:"debtType"`
	Balance        decimal.Decimal `json:"balance"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
}

// LoanProgram is the priced program for a scenario. Price is the authoritative
// purchase price for report math.
type LoanProgram struct {
	Program               Program             `json:"loanProgram"`
	FrontEndRatio         decimal.NullDecimal `json:"frontEndRatio"`
	BackEndRatio          decimal.NullDecimal `json:"backEndRatio"`
	Price                 decimal.NullDecimal `json:"price"`
	InterestRate          decimal.Decimal     `json:"interestRate"`
	BaseLoanAmount        decimal.Decimal     `json:"baseLoanAmount"`
	UPMIPRate             decimal.NullDecimal `json:"upmipRate"`
	UPMIPAmount           decimal.NullDecimal `json:"upmipAmount"`
	FinalLoanAmount       decimal.NullDecimal `json:"finalLoanAmount"`
	MMI                   decimal.NullDecimal `json:"mmi"`
	Term                  int                 `json:"term"`
	DownPaymentAmount     decimal.NullDecimal `json:"downPaymentAmount"`
	DownPaymentPercentage decimal.NullDecimal `json:"downPaymentPercentage"`
	PropertyTax           decimal.NullDecimal `json:"propertyTax"`
	TotalNeededToClose    decimal.NullDecimal `json:"totalNeededToClose"`
	Borrowers             []ProgramBorrower   `json:"borrowers,omitempty"`
	CombinedMonthlyIncome decimal.NullDecimal `json:"combinedMonthlyIncome"`
	PrincipalAndInterest  decimal.NullDecimal `json:"principalAndInterest"`
	MonthlyPropertyTax    decimal.NullDecimal `json:"monthlyPropertyTax"`
	HazardInsurance       decimal.NullDecimal `json:"hazardInsurance"`
	MortgageInsurance     decimal.NullDecimal `json:"mortgageInsurance"`
	HoaFee                decimal.NullDecimal `json:"hoaFee"`
	MonthlyTotal          decimal.NullDecimal `json:"monthlyTotal"`
	AnnualMIPRate         decimal.NullDecimal `json:"annualMipRate"`
}

// ProgramBorrower is the per-borrower income summary captured with a program.
type ProgramBorrower struct {
	MonthlyIncome decimal.NullDecimal `json:"monthlyIncome"`
	Debts         decimal.NullDecimal `json:"debts"`
	FicoScore     *int                `json:"ficoScore,omitempty"`
}

// FindScenario returns the scenario with the given id.
func (d *Document) FindScenario(id uuid.UUID) (*Scenario, bool) {
	for i := range d.Scenarios {
		if d.Scenarios[i].ID == id {
			return &d.Scenarios[i], true
		}
	}
	return nil, false
}

// BorrowerName is the primary borrower of the first scenario, or "" when the
// first scenario has no borrower info.
func (d *Document) BorrowerName() string {
	if len(d.Scenarios) == 0 || d.Scenarios[0].BorrowerInfo == nil {
		return ""
	}
	return d.Scenarios[0].BorrowerInfo.BorrowerName
}

// BorrowerNames lists the names from the scenario's borrower incomes in order.
func (s *Scenario) BorrowerNames() []string {
	names := make([]string, 0, len(s.BorrowerIncomes))
	for _, income := range s.BorrowerIncomes {
		names = append(names, income.BorrowerName)
	}
	return names
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	if d.StatusUpdatedAt != nil {
		at := *d.StatusUpdatedAt
		out.StatusUpdatedAt = &at
	}
	if d.Scenarios != nil {
		out.Scenarios = make([]Scenario, len(d.Scenarios))
		for i := range d.Scenarios {
			out.Scenarios[i] = d.Scenarios[i].clone()
		}
	}
	return out
}

func (s Scenario) clone() Scenario {
	out := s
	out.CreatedAt = clonePtr(s.CreatedAt)
	out.UpdatedAt = clonePtr(s.UpdatedAt)
	if s.BorrowerInfo != nil {
		info := *s.BorrowerInfo
		info.FicoScore = clonePtr(s.BorrowerInfo.FicoScore)
		info.CoBorrowerFicoScore = clonePtr(s.BorrowerInfo.CoBorrowerFicoScore)
		out.BorrowerInfo = &info
	}
	out.PurchaseInfo = clonePtr(s.PurchaseInfo)
	out.LenderFees = clonePtr(s.LenderFees)
	out.PrepaidItems = clonePtr(s.PrepaidItems)
	out.MiscFees = clonePtr(s.MiscFees)
	if s.BorrowerIncomes != nil {
		out.BorrowerIncomes = make([]BorrowerIncome, len(s.BorrowerIncomes))
		for i, income := range s.BorrowerIncomes {
			income.FicoScore = clonePtr(income.FicoScore)
			income.Debts = append([]Debt(nil), income.Debts...)
			out.BorrowerIncomes[i] = income
		}
	}
	if s.LoanProgram != nil {
		program := *s.LoanProgram
		if s.LoanProgram.Borrowers != nil {
			program.Borrowers = make([]ProgramBorrower, len(s.LoanProgram.Borrowers))
			for i, b := range s.LoanProgram.Borrowers {
				b.FicoScore = clonePtr(b.FicoScore)
				program.Borrowers[i] = b
			}
		}
		out.LoanProgram = &program
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
