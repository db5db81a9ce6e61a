// Package output renders quote reports for the command line and for file
// export.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-portal/internal/quote"
	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/iwvelando/loan-portal/pkg/datetime"
	"github.com/iwvelando/loan-portal/pkg/format"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const dateLayout = "January 2, 2006"

// Write renders v to w in the named output format. An empty format is pretty.
func Write(w io.Writer, outputFormat string, v any) error {
	switch outputFormat {
	case "", constants.OutputFormatPretty:
		return PrettyFormat(w, v)
	case constants.OutputFormatJSON:
		return JSONFormat(w, v)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, v)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// JSONFormat writes v as indented JSON.
func JSONFormat(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAMLFormat writes v as YAML. Decimals are written as strings so no precision
// is lost.
func YAMLFormat(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, v any) error {
	t := table{w: w, p: message.NewPrinter(language.English)}
	switch r := v.(type) {
	case quote.PreApprovalReport:
		t.preApproval(r)
	case quote.FHAReport:
		t.fha(r)
	case quote.QuickQuote:
		t.quickQuote(r)
	case quote.EstimatedClosingCost:
		t.title("Estimated closing costs")
		t.closingCost(r)
	case []quote.Summary:
		t.quoteList(r)
	case quote.Dashboard:
		t.dashboard(r)
	default:
		return fmt.Errorf("no pretty format for %T", v)
	}
	return t.err
}

// table writes label/value rows and keeps the first write error.
type table struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (t *table) printf(formatString string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = t.p.Fprintf(t.w, formatString, args...)
}

func (t *table) title(name string) {
	t.printf("--- %s ---\n", name)
}

func (t *table) row(label, value string) {
	t.printf("%-32s %s\n", label+":", value)
}

func (t *table) money(label string, amount decimal.Decimal) {
	t.row(label, format.Currency(amount))
}

func (t *table) preApproval(r quote.PreApprovalReport) {
	t.title("Pre-approval " + r.PreApprovalID.String())
	t.row("Date", r.Date.Format(dateLayout))
	t.row("Borrower", r.BorrowerName)
	if len(r.Borrowers) > 0 {
		t.row("Borrowers", strings.Join(r.Borrowers, ", "))
	}
	t.money("Purchase price", r.PurchasePrice)
	t.money("First mortgage amount", r.FirstMortgageAmount)
	t.money("Down payment", r.DownPaymentAmount)
	t.row("Down payment percentage", format.Percent(r.DownPaymentPercentage))
	t.row("Loan program", r.LoanProgram.String())
	t.row("Property type", r.PropertyType.String())
	t.row("Occupancy", r.OccupancyStatus.String())
	t.row("Agent", r.AgentName)
	if r.AgentInfo != nil {
		t.row("Loan officer", r.AgentInfo.FullName())
		t.row("Lending company", r.LendingCompany)
		if r.AgentInfo.NMLS != "" {
			t.row("NMLS", r.AgentInfo.NMLS)
		}
	}
}

func (t *table) fha(r quote.FHAReport) {
	t.title("FHA loan disclosure " + r.PreApprovalID.String())
	t.row("Date", r.Date.Format(dateLayout))
	t.row("Expires", r.ExpirationDate.Format(dateLayout))
	t.row("Borrower", r.BorrowerName)
	t.row("Loan program", r.LoanProgram.String())
	t.money("Sale price", r.SalePrice)
	t.money("Down payment", r.DownPaymentAmount)
	t.money("Sub financing", r.SubFinancing)
	t.row("Upfront MIP", format.Percent(r.UpfrontMipPercent))
	t.money("Upfront MIP amount", r.UpfrontMipAmount)
	t.money("Total loan amount", r.TotalLoanAmount)
	t.money("Other financed items", r.OtherFinancedItems)
	t.row("Interest rate", format.Percent(r.InterestRate))
	t.printf("%-32s %d years\n", "Loan term:", r.LoanTerm)
	t.printf("\nMonthly payment\n")
	t.money("Principal and interest", r.PILoanAmount)
	t.money("Property tax", r.PropertyTax)
	t.money("Hazard insurance", r.HazardInsurancePremium)
	t.money("Mortgage insurance", r.MortgageInsurance)
	t.money("Monthly MIP", r.MonthlyMortgageInsurance)
	t.money("HOA dues", r.HOADues)
	t.money("Total monthly payment", r.TotalMonthlyPayment)
	t.printf("\nEstimated closing costs\n")
	t.closingCost(r.EstimatedClosingCost)
}

func (t *table) closingCost(c quote.EstimatedClosingCost) {
	t.money(fmt.Sprintf("Discount fee (%s)", format.Percent(c.DiscountFeePercent)), c.DiscountFee)
	t.money(fmt.Sprintf("Origination fee (%s)", format.Percent(c.OriginationFeePercent)), c.OriginationFee)
	t.money(fmt.Sprintf("Prepaid interest (%d days)", c.PrepaidInterestDays), c.PrepaidInterest)
	t.money("Hazard insurance premium", c.HazInsPremium)
	t.money(fmt.Sprintf("Hazard reserve (%d months)", c.HazInsReserveMonths), c.HazInsReserve)
	t.money(fmt.Sprintf("Property taxes (%d months)", c.PpdPropTaxesMonths), c.PpdPropTaxes)
	t.money("Escrow fees", c.EscrowFees)
	t.money("Title insurance", c.TitleInsurance)
	t.money("Third party lender fee", c.ThirdPartyLenderFee)
	t.money("Appraisal fee", c.AppraisalFee)
	t.money("Total settlement charges", c.TotalEstSettlementCharges)
	t.money("Down payment", c.DownPayment)
	for _, credit := range []struct {
		label string
		value decimal.NullDecimal
	}{
		{"Earnest money deposit", c.EarnestMoneyDeposit},
		{"Seller credit", c.SellerCredit},
		{"Lender credit", c.LenderCredit},
		{"Misc fee", c.MiscFee4},
	} {
		if credit.value.Valid {
			t.money(credit.label, credit.value.Decimal)
		}
	}
	t.money("Total funds to close", c.TotalEstFundsToClose)
}

func (t *table) quickQuote(q quote.QuickQuote) {
	t.title("Quick quote " + q.ScenarioID.String())
	t.money("Home value", q.HomeValue)
	t.row("Interest rate", format.Percent(q.InterestRate))
	t.row("Down payment percentage", format.Percent(q.DownPaymentPercent))
	t.row("Loan program", q.LoanProgram.String())
	t.printf("\nMonthly payment\n")
	t.money("Principal and interest", q.PrincipalAndInterest)
	t.money("Property tax", q.PropertyTax)
	t.money("Hazard insurance", q.HazardInsurance)
	t.money("Mortgage insurance", q.MortgageInsurance)
	t.money("HOA fee", q.HoaFee)
	t.money("Monthly total", q.MonthlyTotal)
	t.printf("\nCash to close\n")
	t.money("Down payment", q.DownPayment)
	t.money("Closing costs", q.ClosingCosts)
	t.money("Seller credit", q.SellerCredit)
	t.money("Lender credit", q.LenderCredit)
	t.money("Earnest money deposit", q.EarnestMoneyDeposit)
	t.money("Misc fee", q.MiscFee4)
	t.money("Total required", q.TotalRequired)
}

func (t *table) quoteList(rows []quote.Summary) {
	t.printf("Created    | Status       | Borrower             | Scenario             | Program      | Loan amount     | Monthly\n")
	t.printf("_______    | ______       | ________             | ________             | _______      | ___________     | _______\n")
	for _, row := range rows {
		status := "-"
		if row.Status.Valid() {
			status = row.Status.String()
		}
		if len(row.Scenarios) == 0 {
			t.printf("%-10s | %-12s | %-20s |\n", row.CreatedAt.Format(datetime.DateLayout), status, row.BorrowerName)
			continue
		}
		for _, s := range row.Scenarios {
			t.printf("%-10s | %-12s | %-20s | %-20s | %-12s | %15s | %s\n",
				row.CreatedAt.Format(datetime.DateLayout), status, row.BorrowerName,
				s.ScenarioName, s.LoanProgram, format.Currency(s.LoanAmount), format.Currency(s.MonthlyTotal))
		}
	}
}

func (t *table) dashboard(d quote.Dashboard) {
	t.printf("Metric        | This week | Last week | Change\n")
	t.printf("______        | _________ | _________ | ______\n")
	t.printf("%-13s | %9d | %9d | %+d\n", "Quotes", d.QuotesCreatedThisWeek, d.QuotesCreatedLastWeek, d.QuotesCreatedChange)
	t.printf("%-13s | %9d | %9d | %+d\n", "Pre-approved", d.PreApprovedThisWeek, d.PreApprovedLastWeek, d.PreApprovedChange)
}
