package preapproval

import "github.com/iwvelando/loan-portal/pkg/validation"

// Validate checks the borrower form and returns a message per invalid field.
// The map is empty when the form is valid. Missing FICO scores are accepted,
// both cell numbers are required.
func (b BorrowerInfo) Validate() map[string]string {
	errs := make(map[string]string)

	if validation.ValidateFicoScore(b.FicoScore) != nil {
		errs["ficoScore"] = "FICO score must be between 300 and 850"
	}
	if validation.ValidateFicoScore(b.CoBorrowerFicoScore) != nil {
		errs["coBorrowerFicoScore"] = "Co-borrower's FICO score must be between 300 and 850"
	}
	if validation.ValidateCellNumber(b.BorrowerCellNumber) != nil {
		errs["borrowerCellNumber"] = "Valid U.S. borrower cell number is required"
	}
	if validation.ValidateCellNumber(b.CoBorrowerCellNumber) != nil {
		errs["coBorrowerCellNumber"] = "Valid U.S. co-borrower cell number is required"
	}
	if validation.ValidateEmail(b.BorrowerEmail) != nil {
		errs["borrowerEmail"] = "Valid email is required"
	}

	return errs
}
