package amortization

import (
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// AggregateYearly rolls the flat payoff model into one row per year for
// ceil(monthsToPayoff/12) years, at least one. Principal columns are the flat
// monthly amounts times twelve; interest comes from simulating the balance
// across the years and stops once it is exhausted.
func AggregateYearly(params LoanParameters, monthsToPayoff int) YearlySeries {
	years := mathutil.CeilDiv(monthsToPayoff, constants.MonthsPerYear)
	if years < 1 {
		years = 1
	}

	yearlyInterest := make([]float64, years)
	reduction := params.ScheduledPrincipalPayment + params.ExtraPayment
	simulate(params.Principal, params.MonthlyRate(), years*constants.MonthsPerYear,
		func(int, float64, float64) float64 { return reduction },
		func(step monthStep) bool {
			yearlyInterest[(step.Month-1)/constants.MonthsPerYear] += step.Interest
			return true
		},
	)

	basePrincipal := params.ScheduledPrincipalPayment * constants.MonthsPerYear
	extraPrincipal := params.ExtraPayment * constants.MonthsPerYear
	fees := params.MonthlyFee * constants.MonthsPerYear

	series := YearlySeries{Rows: make([]YearlyRow, 0, years)}
	for i, interest := range yearlyInterest {
		series.Rows = append(series.Rows, YearlyRow{
			Year:           i + 1,
			BasePrincipal:  basePrincipal,
			ExtraPrincipal: extraPrincipal,
			Interest:       interest,
			Total:          basePrincipal + extraPrincipal + interest + fees,
		})
	}
	return series
}
