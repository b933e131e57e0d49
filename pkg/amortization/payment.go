package amortization

import "math"

// MonthlyPayment returns the constant payment that retires principal over
// months at monthlyRate. A zero rate amortizes linearly.
func MonthlyPayment(principal, monthlyRate float64, months int) float64 {
	if months < 1 {
		months = 1
	}
	if monthlyRate == 0 {
		return principal / float64(months)
	}
	// 1 - (1+r)^-n without forming (1+r)^n, which loses precision for long terms.
	discount := -math.Expm1(-float64(months) * math.Log1p(monthlyRate))
	return principal * monthlyRate / discount
}

// InterestPayment returns the interest accrued on balance for one month.
func InterestPayment(balance, monthlyRate float64) float64 {
	return balance * monthlyRate
}

// AnnuityTotalInterest returns the interest paid over the full term when only
// the annuity payment is made.
func AnnuityTotalInterest(principal, monthlyRate float64, months int) float64 {
	if months < 1 {
		months = 1
	}
	return MonthlyPayment(principal, monthlyRate, months)*float64(months) - principal
}
