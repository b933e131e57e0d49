package amortization

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// ErrPaymentTooSmall reports that there is no scheduled principal payment
// (nothing above a cent) to drive the flat payoff model.
var ErrPaymentTooSmall = errors.New("payment too small to amortize")

// ProjectPayoff estimates how long the loan takes to retire when the balance
// drops by a flat ScheduledPrincipalPayment+ExtraPayment each month, and
// compares it with a baseline paying ScheduledPrincipalPayment alone.
// Interest accrues on each month's opening balance. This is an approximation
// and is not reconciled with GenerateSchedule.
func ProjectPayoff(params LoanParameters) (PayoffProjection, error) {
	if !mathutil.IsPositive(params.ScheduledPrincipalPayment) {
		return PayoffProjection{}, fmt.Errorf("%w: scheduled principal payment must be greater than 0", ErrPaymentTooSmall)
	}

	monthlyRate := params.MonthlyRate()
	reduction := params.ScheduledPrincipalPayment + params.ExtraPayment

	months, interest := flatPayoff(params.Principal, monthlyRate, reduction)
	baselineMonths, baselineInterest := months, interest
	if params.ExtraPayment > 0 {
		baselineMonths, baselineInterest = flatPayoff(params.Principal, monthlyRate, params.ScheduledPrincipalPayment)
	}

	return PayoffProjection{
		MonthsToPayoff:   months,
		InterestPaid:     interest,
		InterestSaved:    baselineInterest - interest,
		TimeSavedMonths:  baselineMonths - months,
		BaselineMonths:   baselineMonths,
		BaselineInterest: baselineInterest,
		MonthlyReduction: reduction,
	}, nil
}

// flatPayoff returns the months and interest needed to retire principal with
// a constant monthly reduction. The balance falls linearly, so both follow in
// closed form: the loan settles in the first month k where principal-k*reduction
// is within a cent, and interest is monthlyRate times the sum of the opening
// balances principal-j*reduction for j < k. This agrees with stepping the
// balance through simulate but costs the same for any horizon.
func flatPayoff(principal, monthlyRate, reduction float64) (int, float64) {
	if principal <= 0 {
		return 0, 0
	}

	months := int(math.Ceil((principal - constants.CurrencyTolerance) / reduction))
	if months < 1 {
		months = 1
	}

	n := float64(months)
	openingSum := n*principal - reduction*n*(n-1)/2
	return months, InterestPayment(openingSum, monthlyRate)
}
