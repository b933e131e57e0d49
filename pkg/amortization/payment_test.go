package amortization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		monthlyRate float64
		months      int
		expected    float64
	}{
		{"30 year mortgage at 4.5%", 300000, 0.045 / 12, 360, 1520.06},
		{"30 year mortgage at 6%", 240000, 0.06 / 12, 360, 1438.92},
		{"5 year car loan at 4%", 20000, 0.04 / 12, 60, 368.33},
		{"3 year loan at 18%", 10000, 0.18 / 12, 36, 361.52},
		{"single month", 1000, 0.01, 1, 1010.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.principal, tt.monthlyRate, tt.months)
			assert.InDelta(t, tt.expected, got, 0.01)
		})
	}
}

func TestMonthlyPaymentZeroRateIsLinear(t *testing.T) {
	for _, principal := range []float64{1, 1000, 170000, 300000, 99999999} {
		for _, months := range []int{1, 12, 60, 360, 600} {
			assert.Equal(t, principal/float64(months), MonthlyPayment(principal, 0, months),
				"principal=%v months=%d", principal, months)
		}
	}
}

func TestMonthlyPaymentLongTermsStayFinite(t *testing.T) {
	got := MonthlyPayment(500000, 0.30/12, 600)
	assert.False(t, math.IsInf(got, 0) || math.IsNaN(got))
	// The interest-only payment is the lower bound for very long terms.
	assert.Greater(t, got, 500000*0.30/12)
	assert.InDelta(t, 500000*0.30/12, got, 0.01)
}

func TestMonthlyPaymentGuardsMonths(t *testing.T) {
	assert.Equal(t, MonthlyPayment(1200, 0.01, 1), MonthlyPayment(1200, 0.01, 0))
}

func TestInterestPayment(t *testing.T) {
	assert.InDelta(t, 1000.0, InterestPayment(200000, 0.06/12), 1e-9)
	assert.InDelta(t, 637.5, InterestPayment(170000, 0.045/12), 1e-9)
	assert.Equal(t, 0.0, InterestPayment(10000, 0))
}

func TestAnnuityTotalInterest(t *testing.T) {
	// 1520.06 * 360 - 300000
	assert.InDelta(t, 247220.0, AnnuityTotalInterest(300000, 0.045/12, 360), 5)
	assert.InDelta(t, 0.0, AnnuityTotalInterest(300000, 0, 360), 1e-6)
}
