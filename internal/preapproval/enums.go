package preapproval

import "strconv"

// Program identifies the loan program a scenario is priced under.
type Program int

const (
	ProgramNonQM        Program = 1
	ProgramConventional Program = 2
	ProgramFHA          Program = 3
)

func (p Program) String() string {
	switch p {
	case ProgramNonQM:
		return "NonQM"
	case ProgramConventional:
		return "Conventional"
	case ProgramFHA:
		return "FHA"
	}
	return strconv.Itoa(int(p))
}

// ApplicationStatus is the lifecycle stage of a pre-approval document. Zero
// means the application has not been given a status yet.
type ApplicationStatus int

const (
	StatusPreApproved  ApplicationStatus = 1
	StatusInEscrow     ApplicationStatus = 2
	StatusTBD          ApplicationStatus = 3
	StatusClosedEscrow ApplicationStatus = 4
)

func (s ApplicationStatus) String() string {
	switch s {
	case StatusPreApproved:
		return "PreApproved"
	case StatusInEscrow:
		return "InEscrow"
	case StatusTBD:
		return "TBD"
	case StatusClosedEscrow:
		return "ClosedEscrow"
	}
	return strconv.Itoa(int(s))
}

// Valid reports whether s is one of the defined lifecycle stages.
func (s ApplicationStatus) Valid() bool {
	return s >= StatusPreApproved && s <= StatusClosedEscrow
}

// OccupancyStatus describes how the borrower will use the property.
type OccupancyStatus int

const (
	OccupancyOwnerOccupied OccupancyStatus = 1
	OccupancySecondHome    OccupancyStatus = 2
	OccupancyInvestment    OccupancyStatus = 3
)

func (o OccupancyStatus) String() string {
	switch o {
	case OccupancyOwnerOccupied:
		return "OwnerOccupied"
	case OccupancySecondHome:
		return "SecondHome"
	case OccupancyInvestment:
		return "Investment"
	}
	return strconv.Itoa(int(o))
}

// PropertyType is the number of units on the property.
type PropertyType int

const (
	PropertySFR       PropertyType = 1
	PropertyTwoUnit   PropertyType = 2
	PropertyThreeUnit PropertyType = 3
	PropertyFourUnit  PropertyType = 4
)

func (p PropertyType) String() string {
	switch p {
	case PropertySFR:
		return "SFR"
	case PropertyTwoUnit:
		return "TwoUnit"
	case PropertyThreeUnit:
		return "ThreeUnit"
	case PropertyFourUnit:
		return "FourUnit"
	}
	return strconv.Itoa(int(p))
}

// FormType numbers the wizard steps in the order they are submitted.
type FormType int

const (
	FormBorrowerInfo   FormType = 1
	FormPurchaseInfo   FormType = 2
	FormLenderFees     FormType = 3
	FormPrepaidItems   FormType = 4
	FormMiscFees       FormType = 5
	FormBorrowerIncome FormType = 6
	FormLoanProgram    FormType = 7
)

func (f FormType) String() string {
	switch f {
	case FormBorrowerInfo:
		return "BorrowerInfo"
	case FormPurchaseInfo:
		return "PurchaseInfo"
	case FormLenderFees:
		return "LenderFees"
	case FormPrepaidItems:
		return "PrepaidItems"
	case FormMiscFees:
		return "MiscFees"
	case FormBorrowerIncome:
		return "BorrowerIncomeData"
	case FormLoanProgram:
		return "LoanProgram"
	}
	return strconv.Itoa(int(f))
}
