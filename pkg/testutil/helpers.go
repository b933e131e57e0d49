// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
)

// FindResult finds a result by scenario name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []calculator.Result, name string) *calculator.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// ReferenceLoan is the 200000 loan (170000 after the automatic 15% down
// payment) at 4.5% over 30 years with 200 principal, 300 extra and a 50 fee.
func ReferenceLoan() validation.LoanInput {
	return validation.LoanInput{
		LoanSeeking:      "200000",
		DownPaymentMode:  "auto",
		InterestRate:     "4,5",
		TermYears:        "30",
		PrincipalPayment: "200",
		ExtraPayment:     "300",
		MonthlyFee:       "50",
	}
}
