package grouped

import "math"

// IntervalRow is one class interval of grouped data.
// Midpoint and Width are derived by the stats engine and are ignored on input.
type IntervalRow struct {
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
	Frequency float64 `json:"frequency"`
	Midpoint  float64 `json:"midpoint"`
	Width     float64 `json:"width"`
}

// NewIntervalRow creates a row from caller-supplied bounds and frequency
func NewIntervalRow(lower, upper, frequency float64) IntervalRow {
	return IntervalRow{Lower: lower, Upper: upper, Frequency: frequency}
}

// Dataset is an ordered sequence of class intervals
type Dataset []IntervalRow

// Clone returns a copy that shares no backing array with d
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Frequencies returns the frequency column in row order
func (d Dataset) Frequencies() []float64 {
	out := make([]float64, len(d))
	for i, row := range d {
		out[i] = row.Frequency
	}
	return out
}

// Midpoints returns the midpoint column in row order
func (d Dataset) Midpoints() []float64 {
	out := make([]float64, len(d))
	for i, row := range d {
		out[i] = row.Midpoint
	}
	return out
}

// Bounds returns the smallest lower bound and the largest upper bound.
// ok is false for an empty dataset.
func (d Dataset) Bounds() (min, max float64, ok bool) {
	if len(d) == 0 {
		return 0, 0, false
	}
	min, max = d[0].Lower, d[0].Upper
	for _, row := range d[1:] {
		if row.Lower < min {
			min = row.Lower
		}
		if row.Upper > max {
			max = row.Upper
		}
	}
	return min, max, true
}

// StatsResult bundles the sorted, augmented dataset with the aggregate statistics
type StatsResult struct {
	Dataset        Dataset `json:"dataset"`
	TotalFrequency float64 `json:"total_frequency"`
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	Mode           float64 `json:"mode"`
	Variance       float64 `json:"variance"`
	StdDev         float64 `json:"std_dev"`
}

// RowBreakdown holds the intermediate per-class quantities behind a StatsResult
type RowBreakdown struct {
	Class             string  `json:"class"`
	Midpoint          float64 `json:"midpoint"`
	FX                float64 `json:"fx"`
	CumulativeFreq    float64 `json:"cf"`
	DeviationSquared  float64 `json:"deviation_squared"`
	FDeviationSquared float64 `json:"f_deviation_squared"`
}

// Finite reports whether every aggregate and every row value of the result is
// a finite number. Results that are not cannot be encoded as JSON.
func (r *StatsResult) Finite() bool {
	for _, v := range []float64{r.TotalFrequency, r.Mean, r.Median, r.Mode, r.Variance, r.StdDev} {
		if !isFinite(v) {
			return false
		}
	}
	for _, row := range r.Dataset {
		for _, v := range []float64{row.Lower, row.Upper, row.Frequency, row.Midpoint, row.Width} {
			if !isFinite(v) {
				return false
			}
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
