// Package calculator turns validated loan inputs into complete mortgage
// results: schedule, payoff projection, yearly series and the monthly
// payment breakdown.
package calculator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/amortization"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

// Breakdown is the first month's payment split into its parts.
type Breakdown struct {
	Principal      float64 `json:"principal"`
	Extra          float64 `json:"extra"`
	TotalPrincipal float64 `json:"totalPrincipal"`
	Interest       float64 `json:"interest"`
	Fee            float64 `json:"fee"`
	Total          float64 `json:"total"`
}

// Result holds everything computed for one loan.
type Result struct {
	ID          string                          `json:"id"`
	Name        string                          `json:"name"`
	Currency    string                          `json:"currency"`
	LoanSeeking float64                         `json:"loanSeeking"`
	DownPayment float64                         `json:"downPayment"`
	Params      amortization.LoanParameters     `json:"params"`
	Breakdown   Breakdown                       `json:"breakdown"`
	Schedule    amortization.AmortizationResult `json:"schedule"`
	// Projection is nil when the flat payoff model cannot retire the loan.
	Projection *amortization.PayoffProjection `json:"projection,omitempty"`
	Yearly     amortization.YearlySeries      `json:"yearly"`
	// AnnuityPayment and AnnuityTotalInterest describe the fixed-term
	// annuity with no extra payments.
	AnnuityPayment       float64  `json:"annuityPayment"`
	AnnuityTotalInterest float64  `json:"annuityTotalInterest"`
	Notes                []string `json:"notes,omitempty"`
}

// PayoffMonths returns the projected payoff month count, or the schedule's
// when no projection is available.
func (r Result) PayoffMonths() int {
	if r.Projection != nil {
		return r.Projection.MonthsToPayoff
	}
	return r.Schedule.PayoffMonth
}

// TotalInterest is the schedule's interest, the figure every report leads with.
func (r Result) TotalInterest() float64 {
	return r.Schedule.TotalInterest
}

// Calculate processes every active scenario in conf.
func Calculate(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Result
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "calculator.Calculate"),
			)
			continue
		}

		result, err := CalculateLoan(logger, scenario.Name, conf.Currency, scenario.LoanInput(conf.Common))
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// CalculateLoan validates in and computes its result. Validation failures
// are returned as produced by validation.ValidateLoan so callers can list
// them with validation.FieldErrors.
func CalculateLoan(logger *zap.Logger, name, currency string, in validation.LoanInput) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	validated, err := validation.ValidateLoan(in)
	if err != nil {
		logger.Debug("loan input rejected",
			zap.String("op", "calculator.CalculateLoan"),
			zap.String("scenario", name),
			zap.Error(err),
		)
		return Result{}, err
	}

	params := validated.Params
	result := Result{
		ID:          uuid.NewString(),
		Name:        name,
		Currency:    format.Symbol(currency),
		LoanSeeking: validated.LoanSeeking,
		DownPayment: validated.DownPayment,
		Params:      params,
		Breakdown:   NewBreakdown(params),
		Schedule:    amortization.GenerateSchedule(params),
	}
	result.AnnuityPayment = result.Schedule.BasePayment
	result.AnnuityTotalInterest = amortization.AnnuityTotalInterest(params.Principal, params.MonthlyRate(), params.TermMonths())

	projection, err := amortization.ProjectPayoff(params)
	switch {
	case errors.Is(err, amortization.ErrPaymentTooSmall):
		result.Notes = append(result.Notes, fmt.Sprintf(
			"payoff projection unavailable (%s); no principal payment is set, so the yearly series runs to the amortization schedule's payoff month", err))
		logger.Debug("payoff projection skipped",
			zap.String("op", "calculator.CalculateLoan"),
			zap.String("scenario", name),
			zap.Error(err),
		)
	case err != nil:
		return Result{}, err
	default:
		result.Projection = &projection
	}

	if mathutil.IsPositive(params.ExtraPayment) && result.Schedule.PayoffMonth < params.TermMonths() {
		result.Notes = append(result.Notes, fmt.Sprintf("extra payments retire the annuity schedule in %s instead of %d years",
			format.YearsMonths(result.Schedule.PayoffMonth), params.Term()))
	}

	yearlyMonths := result.PayoffMonths()
	if yearlyMonths > constants.MaxYearlyMonths {
		result.Notes = append(result.Notes, fmt.Sprintf("yearly breakdown covers the first %d years of %s",
			constants.MaxYearlyMonths/constants.MonthsPerYear, format.YearsMonths(yearlyMonths)))
		yearlyMonths = constants.MaxYearlyMonths
	}
	result.Yearly = amortization.AggregateYearly(params, yearlyMonths)

	logger.Debug("loan calculated",
		zap.String("op", "calculator.CalculateLoan"),
		zap.String("scenario", name),
		zap.String("id", result.ID),
		zap.Float64("principal", params.Principal),
		zap.Int("payoffMonths", result.PayoffMonths()),
	)

	return result, nil
}

// NewBreakdown splits the first month's payment: the elected principal and
// extra payment, interest on the full loan and the fee.
func NewBreakdown(params amortization.LoanParameters) Breakdown {
	b := Breakdown{
		Principal: params.ScheduledPrincipalPayment,
		Extra:     params.ExtraPayment,
		Interest:  amortization.InterestPayment(params.Principal, params.MonthlyRate()),
		Fee:       params.MonthlyFee,
	}
	b.TotalPrincipal = b.Principal + b.Extra
	b.Total = b.TotalPrincipal + b.Interest + b.Fee
	return b
}
