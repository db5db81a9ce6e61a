// Package quote turns a pre-approval scenario into the derived reports: the
// pre-approval letter, the FHA disclosure, and the quick quote. Builders work
// on an already-loaded document and never touch storage.
package quote

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/pkg/loans"
	"github.com/iwvelando/loan-portal/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// PreApprovalReport is the data behind the pre-approval letter.
type PreApprovalReport struct {
	PreApprovalID         uuid.UUID                   `json:"preApprovalId" yaml:"preApprovalId"`
	Date                  time.Time                   `json:"date" yaml:"date"`
	BorrowerName          string                      `json:"borrowerName" yaml:"borrowerName"`
	Borrowers             []string                    `json:"borrowers" yaml:"borrowers"`
	LendingCompany        string                      `json:"lendingCompany" yaml:"lendingCompany"`
	FirstMortgageAmount   decimal.Decimal             `json:"firstMortgageAmount" yaml:"firstMortgageAmount"`
	DownPaymentAmount     decimal.Decimal             `json:"downPaymentAmount" yaml:"downPaymentAmount"`
	DownPaymentPercentage decimal.Decimal             `json:"downPaymentPercentage" yaml:"downPaymentPercentage"`
	PurchasePrice         decimal.Decimal             `json:"purchasePrice" yaml:"purchasePrice"`
	LoanProgram           preapproval.Program         `json:"loanProgram" yaml:"loanProgram"`
	PropertyType          preapproval.PropertyType    `json:"propertyType" yaml:"propertyType"`
	OccupancyStatus       preapproval.OccupancyStatus `json:"occupancyStatus" yaml:"occupancyStatus"`
	AgentName             string                      `json:"agentName" yaml:"agentName"`
	AgentInfo             *preapproval.Agent          `json:"agentInfo,omitempty" yaml:"agentInfo,omitempty"`
}

// FHAReport is the FHA loan disclosure. The upfront MIP is financed, so it is
// added to the principal that is amortized but not to TotalLoanAmount.
type FHAReport struct {
	PreApprovalID            uuid.UUID            `json:"preApprovalId" yaml:"preApprovalId"`
	Date                     time.Time            `json:"date" yaml:"date"`
	ExpirationDate           time.Time            `json:"expirationDate" yaml:"expirationDate"`
	BorrowerName             string               `json:"borrowerName" yaml:"borrowerName"`
	SalePrice                decimal.Decimal      `json:"salePrice" yaml:"salePrice"`
	DownPaymentAmount        decimal.Decimal      `json:"downPaymentAmount" yaml:"downPaymentAmount"`
	SubFinancing             decimal.Decimal      `json:"subFinancing" yaml:"subFinancing"`
	UpfrontMipPercent        decimal.Decimal      `json:"upfrontMipPercent" yaml:"upfrontMipPercent"`
	UpfrontMipAmount         decimal.Decimal      `json:"upfrontMipAmount" yaml:"upfrontMipAmount"`
	TotalLoanAmount          decimal.Decimal      `json:"totalLoanAmount" yaml:"totalLoanAmount"`
	OtherFinancedItems       decimal.Decimal      `json:"otherFinancedItems" yaml:"otherFinancedItems"`
	PILoanAmount             decimal.Decimal      `json:"piLoanAmount" yaml:"piLoanAmount"`
	InterestRate             decimal.Decimal      `json:"interestRate" yaml:"interestRate"`
	LoanTerm                 int                  `json:"loanTerm" yaml:"loanTerm"`
	PropertyTax              decimal.Decimal      `json:"propertyTax" yaml:"propertyTax"`
	HazardInsurancePremium   decimal.Decimal      `json:"hazardInsurancePremium" yaml:"hazardInsurancePremium"`
	MortgageInsurance        decimal.Decimal      `json:"mortgageInsurance" yaml:"mortgageInsurance"`
	MonthlyMortgageInsurance decimal.Decimal      `json:"monthlyMortgageInsurance" yaml:"monthlyMortgageInsurance"`
	CoverageRate             decimal.Decimal      `json:"coverageRate" yaml:"coverageRate"`
	HOADues                  decimal.Decimal      `json:"hoaDues" yaml:"hoaDues"`
	TotalMonthlyPayment      decimal.Decimal      `json:"totalMonthlyPayment" yaml:"totalMonthlyPayment"`
	LoanProgram              preapproval.Program  `json:"loanProgram" yaml:"loanProgram"`
	EstimatedClosingCost     EstimatedClosingCost `json:"estimatedClosingCost" yaml:"estimatedClosingCost"`
}

// QuickQuote is the one-page payment and cash-to-close summary.
type QuickQuote struct {
	PreApprovalID        uuid.UUID           `json:"preApprovalId" yaml:"preApprovalId"`
	ScenarioID           uuid.UUID           `json:"scenarioId" yaml:"scenarioId"`
	HomeValue            decimal.Decimal     `json:"homeValue" yaml:"homeValue"`
	InterestRate         decimal.Decimal     `json:"interestRate" yaml:"interestRate"`
	DownPaymentPercent   decimal.Decimal     `json:"downPaymentPercent" yaml:"downPaymentPercent"`
	LoanProgram          preapproval.Program `json:"loanProgram" yaml:"loanProgram"`
	PrincipalAndInterest decimal.Decimal     `json:"principalAndInterest" yaml:"principalAndInterest"`
	PropertyTax          decimal.Decimal     `json:"propertyTax" yaml:"propertyTax"`
	HazardInsurance      decimal.Decimal     `json:"hazardInsurance" yaml:"hazardInsurance"`
	MortgageInsurance    decimal.Decimal     `json:"mortgageInsurance" yaml:"mortgageInsurance"`
	HoaFee               decimal.Decimal     `json:"hoaFee" yaml:"hoaFee"`
	MonthlyTotal         decimal.Decimal     `json:"monthlyTotal" yaml:"monthlyTotal"`
	DownPayment          decimal.Decimal     `json:"downPayment" yaml:"downPayment"`
	ClosingCosts         decimal.Decimal     `json:"closingCosts" yaml:"closingCosts"`
	TotalRequired        decimal.Decimal     `json:"totalRequired" yaml:"totalRequired"`
	SellerCredit         decimal.Decimal     `json:"sellerCredit" yaml:"sellerCredit"`
	LenderCredit         decimal.Decimal     `json:"lenderCredit" yaml:"lenderCredit"`
	EarnestMoneyDeposit  decimal.Decimal     `json:"earnestMoneyDeposit" yaml:"earnestMoneyDeposit"`
	MiscFee4             decimal.Decimal     `json:"miscFee4" yaml:"miscFee4"`
}

// pricing is the principal and payment chain shared by the FHA report and the
// quick quote.
type pricing struct {
	price           decimal.Decimal
	downPercent     decimal.Decimal
	downAmount      decimal.Decimal
	totalLoanAmount decimal.Decimal
	financedUpmip   decimal.Decimal
	monthlyPI       decimal.Decimal
}

// locate finds the scenario and checks the sub-forms every report needs.
func locate(doc *preapproval.Document, scenarioID uuid.UUID) (*preapproval.Scenario, error) {
	if doc == nil {
		return nil, fmt.Errorf("pre-approval document: %w", ErrNotFound)
	}
	scenario, ok := doc.FindScenario(scenarioID)
	if !ok {
		return nil, fmt.Errorf("scenario %s in pre-approval %s: %w", scenarioID, doc.ID, ErrNotFound)
	}
	if scenario.LoanProgram == nil {
		return nil, missing("LoanProgram")
	}
	if scenario.PurchaseInfo == nil {
		return nil, missing("PurchaseInfo")
	}
	if !scenario.LoanProgram.Price.Valid {
		return nil, missing("LoanProgram.Price")
	}
	return scenario, nil
}

// downPayment reads the authoritative price and the down payment percentage
// and returns them with the down payment amount.
func downPayment(scenario *preapproval.Scenario) (price, percent, amount decimal.Decimal) {
	price = scenario.LoanProgram.Price.Decimal
	percent = scenario.PurchaseInfo.DownPayment
	amount = mathutil.ApplyPercentage(price, percent)
	return price, percent, amount
}

// amortize works out the financed principal and the monthly payment on it.
// rateField names the input annualRate came from.
func amortize(scenario *preapproval.Scenario, annualRate decimal.Decimal, rateField string) (pricing, error) {
	if !scenario.LoanProgram.UPMIPRate.Valid {
		return pricing{}, missing("LoanProgram.UPMIPRate")
	}

	var p pricing
	p.price, p.downPercent, p.downAmount = downPayment(scenario)
	p.totalLoanAmount = p.price.Sub(p.downAmount)
	p.financedUpmip = mathutil.ApplyPercentage(p.totalLoanAmount, scenario.LoanProgram.UPMIPRate.Decimal)

	pi, err := loans.MonthlyPI(p.totalLoanAmount.Add(p.financedUpmip), annualRate, scenario.LoanProgram.Term)
	if err != nil {
		if errors.Is(err, loans.ErrInvalidTerm) {
			return pricing{}, &ValidationError{
				Field:   "LoanProgram.Term",
				Message: fmt.Sprintf("LoanProgram.Term must be greater than zero, got %d", scenario.LoanProgram.Term),
				Err:     err,
			}
		}
		if errors.Is(err, loans.ErrRateOutOfRange) {
			return pricing{}, &ValidationError{
				Field:   rateField,
				Message: fmt.Sprintf("%s is out of range, got %s", rateField, annualRate),
				Err:     err,
			}
		}
		return pricing{}, err
	}
	p.monthlyPI = pi
	return p, nil
}

// monthlyCharges are the non-P&I parts of the monthly payment.
type monthlyCharges struct {
	propertyTax       decimal.Decimal
	hazardInsurance   decimal.Decimal
	mortgageInsurance decimal.Decimal
	hoa               decimal.Decimal
}

func (m monthlyCharges) total(pi decimal.Decimal) decimal.Decimal {
	return mathutil.Sum(pi, m.propertyTax, m.hazardInsurance, m.mortgageInsurance, m.hoa)
}

func requireMonthlyCharges(scenario *preapproval.Scenario) (monthlyCharges, error) {
	program := scenario.LoanProgram
	purchase := scenario.PurchaseInfo
	for _, field := range []struct {
		name  string
		value decimal.NullDecimal
	}{
		{"LoanProgram.MonthlyPropertyTax", program.MonthlyPropertyTax},
		{"PurchaseInfo.HazardInsurance", purchase.HazardInsurance},
		{"PurchaseInfo.MiPercent", purchase.MiPercent},
		{"PurchaseInfo.AssociationFee", purchase.AssociationFee},
	} {
		if !field.value.Valid {
			return monthlyCharges{}, missing(field.name)
		}
	}
	return monthlyCharges{
		propertyTax:       program.MonthlyPropertyTax.Decimal,
		hazardInsurance:   purchase.HazardInsurance.Decimal,
		mortgageInsurance: purchase.MiPercent.Decimal,
		hoa:               purchase.AssociationFee.Decimal,
	}, nil
}

// BuildPreApprovalReport assembles the pre-approval letter for a scenario.
// agent may be nil when the requesting user has no profile.
func BuildPreApprovalReport(doc *preapproval.Document, scenarioID uuid.UUID, agent *preapproval.Agent, now time.Time) (PreApprovalReport, error) {
	scenario, err := locate(doc, scenarioID)
	if err != nil {
		return PreApprovalReport{}, err
	}

	purchasePrice, downPercent, downAmount := downPayment(scenario)

	report := PreApprovalReport{
		PreApprovalID:         doc.ID,
		Date:                  now.UTC(),
		Borrowers:             scenario.BorrowerNames(),
		FirstMortgageAmount:   mathutil.RoundCurrency(purchasePrice.Sub(downAmount)),
		DownPaymentAmount:     mathutil.RoundCurrency(downAmount),
		DownPaymentPercentage: downPercent,
		PurchasePrice:         mathutil.RoundCurrency(purchasePrice),
		LoanProgram:           scenario.LoanProgram.Program,
		PropertyType:          scenario.PurchaseInfo.PropertyType,
		OccupancyStatus:       scenario.PurchaseInfo.OccupancyStatus,
	}
	if scenario.BorrowerInfo != nil {
		report.BorrowerName = scenario.BorrowerInfo.BorrowerName
	}
	if scenario.LenderFees != nil {
		report.AgentName = scenario.LenderFees.AgentName
	}
	if agent != nil {
		info := *agent
		report.AgentInfo = &info
		report.LendingCompany = agent.CompanyName
	}
	return report, nil
}

// BuildFHAReport assembles the FHA disclosure for a scenario. The report
// expires one month after now.
func BuildFHAReport(doc *preapproval.Document, scenarioID uuid.UUID, now time.Time) (FHAReport, error) {
	scenario, err := locate(doc, scenarioID)
	if err != nil {
		return FHAReport{}, err
	}
	if !scenario.LoanProgram.MMI.Valid {
		return FHAReport{}, missing("LoanProgram.MMI")
	}

	purchase := scenario.PurchaseInfo
	p, err := amortize(scenario, purchase.AnnualInterestRate, "PurchaseInfo.AnnualInterestRate")
	if err != nil {
		return FHAReport{}, err
	}
	charges, err := requireMonthlyCharges(scenario)
	if err != nil {
		return FHAReport{}, err
	}
	cost, err := EstimateClosingCost(scenario, p.downAmount)
	if err != nil {
		return FHAReport{}, err
	}

	upfrontMipAmount := mathutil.ApplyPercentage(p.price, purchase.MipFundingFee)
	monthlyMI := mathutil.Monthly(mathutil.ApplyPercentage(p.totalLoanAmount, scenario.LoanProgram.MMI.Decimal))
	date := now.UTC()

	report := FHAReport{
		PreApprovalID:            doc.ID,
		Date:                     date,
		ExpirationDate:           date.AddDate(0, 1, 0),
		SalePrice:                mathutil.RoundCurrency(p.price),
		DownPaymentAmount:        mathutil.RoundCurrency(p.downAmount),
		SubFinancing:             decimal.Zero,
		UpfrontMipPercent:        purchase.MipFundingFee,
		UpfrontMipAmount:         mathutil.RoundCurrency(upfrontMipAmount),
		TotalLoanAmount:          mathutil.RoundCurrency(p.totalLoanAmount),
		OtherFinancedItems:       mathutil.RoundCurrency(p.financedUpmip),
		PILoanAmount:             mathutil.RoundCurrency(p.monthlyPI),
		InterestRate:             purchase.AnnualInterestRate,
		LoanTerm:                 scenario.LoanProgram.Term,
		PropertyTax:              mathutil.RoundCurrency(charges.propertyTax),
		HazardInsurancePremium:   mathutil.RoundCurrency(charges.hazardInsurance),
		MortgageInsurance:        mathutil.RoundCurrency(charges.mortgageInsurance),
		MonthlyMortgageInsurance: mathutil.RoundCurrency(monthlyMI),
		CoverageRate:             purchase.MipFundingFee,
		HOADues:                  mathutil.RoundCurrency(charges.hoa),
		TotalMonthlyPayment:      mathutil.RoundCurrency(charges.total(p.monthlyPI)),
		LoanProgram:              purchase.LoanProgram,
		EstimatedClosingCost:     cost.Rounded(),
	}
	if scenario.BorrowerInfo != nil {
		report.BorrowerName = scenario.BorrowerInfo.BorrowerName
	}
	return report, nil
}

// BuildQuickQuote assembles the quick quote for a scenario. Unlike the closing
// cost estimate, every misc credit must be present.
func BuildQuickQuote(doc *preapproval.Document, scenarioID uuid.UUID) (QuickQuote, error) {
	scenario, err := locate(doc, scenarioID)
	if err != nil {
		return QuickQuote{}, err
	}

	p, err := amortize(scenario, scenario.LoanProgram.InterestRate, "LoanProgram.InterestRate")
	if err != nil {
		return QuickQuote{}, err
	}
	charges, err := requireMonthlyCharges(scenario)
	if err != nil {
		return QuickQuote{}, err
	}
	cost, err := EstimateClosingCost(scenario, p.downAmount)
	if err != nil {
		return QuickQuote{}, err
	}

	misc := scenario.MiscFees
	for _, field := range []struct {
		name  string
		value decimal.NullDecimal
	}{
		{"MiscFees.SellerCredit", misc.SellerCredit},
		{"MiscFees.LenderCredit", misc.LenderCredit},
		{"MiscFees.EarnestMoneyDeposit", misc.EarnestMoneyDeposit},
		{"MiscFees.MiscFee4", misc.MiscFee4},
	} {
		if !field.value.Valid {
			return QuickQuote{}, missing(field.name)
		}
	}
	credits := mathutil.Sum(misc.SellerCredit.Decimal, misc.LenderCredit.Decimal,
		misc.EarnestMoneyDeposit.Decimal, misc.MiscFee4.Decimal)
	totalRequired := p.downAmount.Add(cost.TotalEstSettlementCharges).Sub(credits)

	return QuickQuote{
		PreApprovalID:        doc.ID,
		ScenarioID:           scenario.ID,
		HomeValue:            mathutil.RoundCurrency(p.price),
		InterestRate:         scenario.LoanProgram.InterestRate,
		DownPaymentPercent:   p.downPercent,
		LoanProgram:          scenario.PurchaseInfo.LoanProgram,
		PrincipalAndInterest: mathutil.RoundCurrency(p.monthlyPI),
		PropertyTax:          mathutil.RoundCurrency(charges.propertyTax),
		HazardInsurance:      mathutil.RoundCurrency(charges.hazardInsurance),
		MortgageInsurance:    mathutil.RoundCurrency(charges.mortgageInsurance),
		HoaFee:               mathutil.RoundCurrency(charges.hoa),
		MonthlyTotal:         mathutil.RoundCurrency(charges.total(p.monthlyPI)),
		DownPayment:          mathutil.RoundCurrency(p.downAmount),
		ClosingCosts:         mathutil.RoundCurrency(cost.TotalEstSettlementCharges),
		TotalRequired:        mathutil.RoundCurrency(totalRequired),
		SellerCredit:         mathutil.RoundCurrency(misc.SellerCredit.Decimal),
		LenderCredit:         mathutil.RoundCurrency(misc.LenderCredit.Decimal),
		EarnestMoneyDeposit:  mathutil.RoundCurrency(misc.EarnestMoneyDeposit.Decimal),
		MiscFee4:             mathutil.RoundCurrency(misc.MiscFee4.Decimal),
	}, nil
}
