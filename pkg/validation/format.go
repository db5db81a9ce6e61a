// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/loan-portal/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatJSON, constants.OutputFormatYAML:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatJSON, constants.OutputFormatYAML, format)
}

// ValidateReportKind checks if the report kind is one the quote engine can build.
func ValidateReportKind(kind string) error {
	switch kind {
	case constants.ReportPreApproval, constants.ReportFHA, constants.ReportQuickQuote:
		return nil
	}
	return fmt.Errorf("expected report of %s, %s or %s, got %s",
		constants.ReportPreApproval, constants.ReportFHA, constants.ReportQuickQuote, kind)
}
