package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iwvelando/loan-portal/pkg/constants"
)

var (
	// ErrInvalidCellNumber is returned for anything other than a US number written as 1 followed by ten digits.
	ErrInvalidCellNumber = errors.New("valid U.S. cell number is required")
	// ErrInvalidEmail is returned for a blank address or one without an @.
	ErrInvalidEmail = errors.New("valid email is required")

	usCellNumber = regexp.MustCompile(`^1\d{10}$`)
)

// ValidateFicoScore checks a credit score lies within the FICO range. A missing
// score is accepted.
func ValidateFicoScore(score *int) error {
	if score == nil {
		return nil
	}
	if *score < constants.MinFicoScore || *score > constants.MaxFicoScore {
		return fmt.Errorf("FICO score must be between %d and %d, got %d",
			constants.MinFicoScore, constants.MaxFicoScore, *score)
	}
	return nil
}

// ValidateCellNumber checks a US cell number in the 1XXXXXXXXXX form.
func ValidateCellNumber(number string) error {
	if strings.TrimSpace(number) == "" || !usCellNumber.MatchString(number) {
		return ErrInvalidCellNumber
	}
	return nil
}

// ValidateEmail performs the minimal email check used by the borrower form.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}
