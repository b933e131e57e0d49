package amortization

// GenerateSchedule simulates the loan month by month. The annuity payment is
// computed once from the original principal over the full term; each month
// its principal share plus the extra payment reduces the balance. When that
// would overshoot the balance the month is clamped to the balance and the
// extra payment is consumed: the clamp month and any later month report no
// extra payment. The fee is added to Payment only.
//
// GenerateSchedule never fails; inputs are expected to be validated.
func GenerateSchedule(params LoanParameters) AmortizationResult {
	var result AmortizationResult
	if params.Principal <= 0 {
		return result
	}

	monthlyRate := params.MonthlyRate()
	months := params.TermMonths()
	basePayment := MonthlyPayment(params.Principal, monthlyRate, months)

	// The extra payment is one-shot at payoff; track it locally so params
	// stays untouched.
	extra := params.ExtraPayment

	result.BasePayment = basePayment
	result.Entries = make([]ScheduleEntry, 0, months)

	simulate(params.Principal, monthlyRate, months,
		func(_ int, _, interest float64) float64 {
			return basePayment - interest + extra
		},
		func(step monthStep) bool {
			entry := ScheduleEntry{
				Month:               step.Month,
				Payment:             step.Reduction + params.MonthlyFee,
				Principal:           step.Reduction - extra,
				Interest:            step.Interest,
				Balance:             step.Closing,
				ExtraPaymentApplied: extra,
				Fee:                 params.MonthlyFee,
			}
			if step.Settled {
				extra = 0
				entry.Principal = step.Reduction
				entry.ExtraPaymentApplied = 0
			}

			result.TotalInterest += step.Interest
			result.Entries = append(result.Entries, entry)
			return true
		},
	)

	result.PayoffMonth = len(result.Entries)
	return result
}
