package engine

import (
	"testing"

	"groupstat/domain/grouped"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdown(t *testing.T) {
	result, err := NewGroupedStatsEngine().Compute([]grouped.IntervalRow{
		grouped.NewIntervalRow(10, 20, 8),
		grouped.NewIntervalRow(0, 10, 5),
		grouped.NewIntervalRow(20, 30, 3),
	})
	require.NoError(t, err)

	rows := Breakdown(result)
	require.Len(t, rows, 3)

	assert.Equal(t, "0-10", rows[0].Class)
	assert.Equal(t, 25.0, rows[0].FX)
	assert.Equal(t, 5.0, rows[0].CumulativeFreq)
	assert.Equal(t, 13.0, rows[1].CumulativeFreq)
	assert.Equal(t, 16.0, rows[2].CumulativeFreq)
	assert.InDelta(t, 76.5625, rows[0].DeviationSquared, 1e-12)
	assert.InDelta(t, 5*76.5625, rows[0].FDeviationSquared, 1e-12)

	var sum float64
	for _, r := range rows {
		sum += r.FDeviationSquared
	}
	assert.InDelta(t, result.Variance*result.TotalFrequency, sum, 1e-9)
}

func TestBreakdown_Nil(t *testing.T) {
	assert.Nil(t, Breakdown(nil))
}

func TestClassLabel(t *testing.T) {
	assert.Equal(t, "0.5-1.25", ClassLabel(grouped.NewIntervalRow(0.5, 1.25, 1)))
	assert.Equal(t, "-10-0", ClassLabel(grouped.NewIntervalRow(-10, 0, 1)))
}
