// Package validation checks user input before it reaches the amortization
// engine.
package validation

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(outputFormat string) error {
	switch outputFormat {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, outputFormat)
}

// ValidateCurrency checks that a currency symbol or code is selectable.
// An empty value selects the default currency.
func ValidateCurrency(currency string) error {
	if currency == "" {
		return nil
	}
	if _, ok := format.LookupCurrency(currency); !ok {
		return fmt.Errorf("unsupported currency %q", currency)
	}
	return nil
}
