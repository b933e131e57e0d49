package amortization

import "github.com/iwvelando/mortgage-calculator/pkg/mathutil"

// monthStep describes one month of a balance simulation.
type monthStep struct {
	Month     int
	Opening   float64
	Interest  float64
	Reduction float64
	Closing   float64
	// Settled is set on the month the balance reaches zero.
	Settled bool
}

// reduceFunc returns the principal reduction for a month given its opening
// balance and accrued interest.
type reduceFunc func(month int, balance, interest float64) float64

// simulate steps a balance month by month until it reaches zero or maxMonths
// have elapsed. A reduction larger than the balance, or one that would leave
// a cent or less, is clamped so the balance ends at exactly zero. visit
// sees every month and may stop the loop by returning false.
func simulate(principal, monthlyRate float64, maxMonths int, reduce reduceFunc, visit func(monthStep) bool) {
	balance := principal
	for month := 1; month <= maxMonths; month++ {
		if balance <= 0 {
			return
		}

		step := monthStep{
			Month:    month,
			Opening:  balance,
			Interest: InterestPayment(balance, monthlyRate),
		}

		reduction := reduce(month, balance, step.Interest)
		if reduction < 0 {
			reduction = 0
		}
		if reduction > 0 && !mathutil.IsPositive(balance-reduction) {
			reduction = balance
			step.Settled = true
		}

		balance -= reduction
		if step.Settled {
			balance = 0
		}
		step.Reduction = reduction
		step.Closing = balance

		if !visit(step) {
			return
		}
	}
}
