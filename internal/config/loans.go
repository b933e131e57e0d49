package config

import "github.com/iwvelando/mortgage-calculator/pkg/validation"

// Scenario holds one named loan to calculate. Loan fields left empty are
// inherited from Configuration.Common.
type Scenario struct {
	Name   string               `yaml:"name"`
	Active bool                 `yaml:"active"`
	Loan   validation.LoanInput `yaml:"loan,omitempty"`
}

// LoanInput returns the scenario's loan merged over common.
func (s Scenario) LoanInput(common validation.LoanInput) validation.LoanInput {
	merged := s.Loan
	inherit(&merged.LoanSeeking, common.LoanSeeking)
	inherit(&merged.DownPayment, common.DownPayment)
	inherit(&merged.DownPaymentMode, common.DownPaymentMode)
	inherit(&merged.InterestRate, common.InterestRate)
	inherit(&merged.TermYears, common.TermYears)
	inherit(&merged.PrincipalPayment, common.PrincipalPayment)
	inherit(&merged.ExtraPayment, common.ExtraPayment)
	inherit(&merged.MonthlyFee, common.MonthlyFee)
	return merged
}

func inherit(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
}
