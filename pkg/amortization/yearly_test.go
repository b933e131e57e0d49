package amortization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateYearlyFlatColumns(t *testing.T) {
	params := referenceParams()

	series := AggregateYearly(params, 340)

	require.Len(t, series.Rows, 29)
	for i, row := range series.Rows {
		assert.Equal(t, i+1, row.Year)
		assert.Equal(t, 2400.0, row.BasePrincipal)
		assert.Equal(t, 3600.0, row.ExtraPrincipal)
		assert.GreaterOrEqual(t, row.Interest, 0.0)
		assert.InDelta(t, row.BasePrincipal+row.ExtraPrincipal+row.Interest+600, row.Total, 1e-9)
	}
}

func TestAggregateYearlyInterestMatchesProjection(t *testing.T) {
	params := referenceParams()
	projection, err := ProjectPayoff(params)
	require.NoError(t, err)

	series := AggregateYearly(params, projection.MonthsToPayoff)

	var interest float64
	for _, row := range series.Rows {
		interest += row.Interest
	}
	assert.InDelta(t, projection.InterestPaid, interest, 1e-6)
}

func TestAggregateYearlyStopsOnceExhausted(t *testing.T) {
	params := LoanParameters{Principal: 1200, AnnualRatePercent: 12, ScheduledPrincipalPayment: 400}

	series := AggregateYearly(params, 24)

	require.Len(t, series.Rows, 2)
	assert.InDelta(t, 24.0, series.Rows[0].Interest, 1e-9)
	assert.Equal(t, 0.0, series.Rows[1].Interest)
	assert.Equal(t, 4800.0, series.Rows[1].Total)
}

func TestAggregateYearlyAtLeastOneRow(t *testing.T) {
	for _, months := range []int{0, -5} {
		series := AggregateYearly(referenceParams(), months)
		assert.Len(t, series.Rows, 1, "months=%d", months)
	}
}

func TestYearlySeriesHelpers(t *testing.T) {
	series := AggregateYearly(referenceParams(), 340)

	assert.Equal(t, series.Rows[0].Total, series.MaxTotal())
	assert.Len(t, series.Rows[0].Values(), len(SeriesLabels))
	assert.Equal(t, series.Rows[0].Interest, series.Rows[0].Values()[2])
}
