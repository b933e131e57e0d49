// Package amortization projects the cost of a fixed-rate mortgage.
//
// It provides four pure functions that share one month-stepping loop:
// MonthlyPayment (the annuity formula), GenerateSchedule (the month-by-month
// amortization schedule), ProjectPayoff (time and interest saved by extra
// principal under a flat monthly reduction) and AggregateYearly (per-year
// totals for charts and reports). None of them hold state or mutate their
// inputs, so they are safe to call concurrently.
//
// Two payment models are in play and they are deliberately kept apart. The
// schedule amortizes the annuity payment and its TotalInterest is the
// authoritative interest figure. The projection and the yearly series reduce
// the balance by a flat ScheduledPrincipalPayment+ExtraPayment each month and
// are an approximation for comparing payoff speed.
package amortization

import (
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// SeriesLabels names the yearly series in chart order.
var SeriesLabels = []string{"Base Principal", "Extra Principal", "Interest", "Total"}

// LoanParameters holds the validated inputs of one calculation.
type LoanParameters struct {
	// Principal is the borrowed amount after the down payment.
	Principal float64 `json:"principal"`
	// AnnualRatePercent is the nominal yearly rate, e.g. 4.5.
	AnnualRatePercent float64 `json:"annualRatePercent"`
	// TermYears is the loan term; zero or less selects the default.
	TermYears int `json:"termYears"`
	// ScheduledPrincipalPayment is the borrower-elected monthly principal
	// contribution driving the flat payoff model.
	ScheduledPrincipalPayment float64 `json:"scheduledPrincipalPayment"`
	// ExtraPayment is paid on top of the principal every month until payoff.
	ExtraPayment float64 `json:"extraPayment"`
	// MonthlyFee is a non-amortizing charge added to the displayed payment.
	MonthlyFee float64 `json:"monthlyFee"`
}

// MonthlyRate returns the monthly interest rate as a fraction.
func (p LoanParameters) MonthlyRate() float64 {
	return mathutil.MonthlyRate(p.AnnualRatePercent)
}

// Term returns the effective term in years.
func (p LoanParameters) Term() int {
	if p.TermYears <= 0 {
		return constants.DefaultTermYears
	}
	return p.TermYears
}

// TermMonths returns the effective term in months.
func (p LoanParameters) TermMonths() int {
	return p.Term() * constants.MonthsPerYear
}

// ScheduleEntry is one simulated month of the amortization schedule.
type ScheduleEntry struct {
	Month               int     `json:"month"`
	Payment             float64 `json:"payment"`
	Principal           float64 `json:"principal"`
	Interest            float64 `json:"interest"`
	Balance             float64 `json:"balance"`
	ExtraPaymentApplied float64 `json:"extraPaymentApplied"`
	Fee                 float64 `json:"fee"`
}

// AmortizationResult is the output of GenerateSchedule.
type AmortizationResult struct {
	Entries       []ScheduleEntry `json:"entries"`
	BasePayment   float64         `json:"basePayment"`
	TotalInterest float64         `json:"totalInterest"`
	PayoffMonth   int             `json:"payoffMonth"`
}

// FinalBalance returns the balance after the last entry, or zero for an
// empty schedule.
func (r AmortizationResult) FinalBalance() float64 {
	if len(r.Entries) == 0 {
		return 0
	}
	return r.Entries[len(r.Entries)-1].Balance
}

// PayoffProjection compares a flat payoff with and without the extra payment.
type PayoffProjection struct {
	MonthsToPayoff   int     `json:"monthsToPayoff"`
	InterestPaid     float64 `json:"interestPaid"`
	InterestSaved    float64 `json:"interestSaved"`
	TimeSavedMonths  int     `json:"timeSavedMonths"`
	BaselineMonths   int     `json:"baselineMonths"`
	BaselineInterest float64 `json:"baselineInterest"`
	MonthlyReduction float64 `json:"monthlyReduction"`
}

// YearlyRow holds the totals of one loan year.
type YearlyRow struct {
	Year           int     `json:"year"`
	BasePrincipal  float64 `json:"basePrincipal"`
	ExtraPrincipal float64 `json:"extraPrincipal"`
	Interest       float64 `json:"interest"`
	Total          float64 `json:"total"`
}

// YearlySeries is the per-year view used by charts and reports.
type YearlySeries struct {
	Rows []YearlyRow `json:"rows"`
}

// Values returns the row values in SeriesLabels order.
func (r YearlyRow) Values() []float64 {
	return []float64{r.BasePrincipal, r.ExtraPrincipal, r.Interest, r.Total}
}

// MaxTotal returns the largest Total in the series.
func (s YearlySeries) MaxTotal() float64 {
	var top float64
	for _, row := range s.Rows {
		if row.Total > top {
			top = row.Total
		}
	}
	return top
}
