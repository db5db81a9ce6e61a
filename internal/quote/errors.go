package quote

import (
	"errors"

	"github.com/iwvelando/loan-portal/pkg/loans"
)

// ErrNotFound is returned when a document or scenario id does not resolve.
var ErrNotFound = errors.New("not found")

// ErrInvalidTerm is returned, wrapped in a ValidationError, for a loan program
// whose term is not a positive number of years.
var ErrInvalidTerm = loans.ErrInvalidTerm

// ErrRateOutOfRange is returned, wrapped in a ValidationError, for an interest
// rate too large to amortize.
var ErrRateOutOfRange = loans.ErrRateOutOfRange

// ValidationError reports a required input that is missing or unusable.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// missing builds the error for an absent required sub-form or field.
func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " cannot be null"}
}
