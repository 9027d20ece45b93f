package engine

import (
	"strconv"

	"groupstat/domain/grouped"
)

// Breakdown lists the per-class intermediate quantities of a computed result:
// midpoint, f·x, cumulative frequency and squared deviations from the mean.
func Breakdown(result *grouped.StatsResult) []grouped.RowBreakdown {
	if result == nil {
		return nil
	}

	out := make([]grouped.RowBreakdown, 0, len(result.Dataset))
	cf := 0.0
	for _, row := range result.Dataset {
		cf += row.Frequency
		dev := row.Midpoint - result.Mean
		out = append(out, grouped.RowBreakdown{
			Class:             ClassLabel(row),
			Midpoint:          row.Midpoint,
			FX:                row.Frequency * row.Midpoint,
			CumulativeFreq:    cf,
			DeviationSquared:  dev * dev,
			FDeviationSquared: row.Frequency * dev * dev,
		})
	}
	return out
}

// ClassLabel formats a class interval as "lower-upper"
func ClassLabel(row grouped.IntervalRow) string {
	return formatBound(row.Lower) + "-" + formatBound(row.Upper)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
